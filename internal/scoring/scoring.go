// Package scoring implements the pure, stateless Belot scoring rules:
// trick points, declaration resolution, round resolution (including the
// "fall"/pad rule and capot), and game-winner detection.
package scoring

import (
	"github.com/bela4us/belotsrv/internal/belotstate"
	"github.com/bela4us/belotsrv/internal/card"
	"github.com/bela4us/belotsrv/internal/rules"
)

// CompletedTrick is one resolved trick: its winning team and point total
// (including the +10 last-trick bonus when applicable).
type CompletedTrick struct {
	Winner belotstate.Team
	Points int
}

// TrickPoints sums the point values of the cards in trick, adding a +10
// bonus if isLastTrick.
func TrickPoints(cards []card.Card, trump card.Suit, isLastTrick bool) int {
	total := 0
	for _, c := range cards {
		total += c.Value(trump)
	}
	if isLastTrick {
		total += 10
	}
	return total
}

// TeamDeclaration is one team's declarations for a round.
type TeamDeclaration struct {
	Team         belotstate.Team
	Declarations []rules.Declaration
}

// DeclarationResult is the outcome of comparing both teams' declarations.
type DeclarationResult struct {
	Winner       belotstate.Team
	WinnerPoints int
	HasWinner    bool // false when neither team declared anything
}

func maxValue(decls []rules.Declaration) int {
	max := 0
	for _, d := range decls {
		if d.Value > max {
			max = d.Value
		}
	}
	return max
}

func sumValue(decls []rules.Declaration) int {
	sum := 0
	for _, d := range decls {
		sum += d.Value
	}
	return sum
}

// ResolveDeclarations compares team A's and team B's declarations by their
// highest single value. The team with the higher single declaration scores
// the sum of all of its declarations; the other scores zero. Ties always
// favor callingTeam; this rule is fixed, not configurable.
func ResolveDeclarations(teamA, teamB []rules.Declaration, callingTeam belotstate.Team) DeclarationResult {
	maxA, maxB := maxValue(teamA), maxValue(teamB)

	if maxA == 0 && maxB == 0 {
		return DeclarationResult{HasWinner: false}
	}

	var winner belotstate.Team
	switch {
	case maxA > maxB:
		winner = belotstate.TeamA
	case maxB > maxA:
		winner = belotstate.TeamB
	default:
		winner = callingTeam
	}

	points := sumValue(teamA)
	if winner == belotstate.TeamB {
		points = sumValue(teamB)
	}
	return DeclarationResult{Winner: winner, WinnerPoints: points, HasWinner: true}
}

// RoundTotals carries the components of a team's round total before the
// fall/pad rule is applied.
type RoundTotals struct {
	TrickPoints       int
	DeclarationPoints int
	BelotBonus        int
	TricksWon         int // number of tricks (of 8) won by this team
}

func (r RoundTotals) sum() int {
	return r.TrickPoints + r.DeclarationPoints + r.BelotBonus
}

// RoundResult is the final, fall-rule-applied round outcome.
type RoundResult struct {
	TeamATotal  int
	TeamBTotal  int
	CallingTeam belotstate.Team
	Fell        bool // true if the calling team fell (scored 0)
	Capot       belotstate.Team
	HasCapot    bool
}

const capotBonus = 90

// ResolveRound applies the capot bonus and the fall/pad rule to the raw
// team totals, producing the round's final scores.
//
// Capot (one team wins all 8 tricks) adds 90 points to that team's trick
// total before the fall comparison. If the calling team achieves capot they
// keep their (boosted) total; if the opponents achieve capot against the
// caller, the caller still falls (capot cannot rescue the caller).
func ResolveRound(callingTeam belotstate.Team, calling, opponents RoundTotals) RoundResult {
	result := RoundResult{CallingTeam: callingTeam}

	if calling.TricksWon == 8 {
		calling.TrickPoints += capotBonus
		result.Capot = callingTeam
		result.HasCapot = true
	} else if opponents.TricksWon == 8 {
		opponents.TrickPoints += capotBonus
		result.Capot = callingTeam.Other()
		result.HasCapot = true
	}

	c := calling.sum()
	o := opponents.sum()

	var callingFinal, opponentsFinal int
	if c > o {
		callingFinal, opponentsFinal = c, o
	} else {
		callingFinal, opponentsFinal = 0, c+o
		result.Fell = true
	}

	if callingTeam == belotstate.TeamA {
		result.TeamATotal, result.TeamBTotal = callingFinal, opponentsFinal
	} else {
		result.TeamATotal, result.TeamBTotal = opponentsFinal, callingFinal
	}
	return result
}

// GameWinnerResult reports whether the game ended this round.
type GameWinnerResult struct {
	Winner    belotstate.Team
	HasWinner bool
}

// GameWinner decides whether the game has ended after adding this round's
// totals to the prior accumulated scores. If both teams cross threshold in
// the same round, the calling team wins if it reached threshold, otherwise
// the team with the higher new total wins; a further tie means no winner
// yet (another round is played).
func GameWinner(newTeamATotal, newTeamBTotal, threshold int, callingTeam belotstate.Team) GameWinnerResult {
	aReached := newTeamATotal >= threshold
	bReached := newTeamBTotal >= threshold

	switch {
	case aReached && bReached:
		return GameWinnerResult{Winner: callingTeam, HasWinner: true}
	case aReached:
		return GameWinnerResult{Winner: belotstate.TeamA, HasWinner: true}
	case bReached:
		return GameWinnerResult{Winner: belotstate.TeamB, HasWinner: true}
	}
	return GameWinnerResult{HasWinner: false}
}
