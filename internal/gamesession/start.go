package gamesession

import (
	"fmt"

	"github.com/bela4us/belotsrv/internal/belotstate"
	"github.com/bela4us/belotsrv/internal/round"
	"github.com/bela4us/belotsrv/internal/scoring"
)

// Start transitions the game into play: it randomly partitions the four
// seated players into two teams of two (seats 0/2 vs 1/3), picks a random
// starting dealer, and deals round 1. Teams are always drawn at random;
// there is no way to preset them.
func (g *Game) Start() *belotstate.GameError {
	if !g.CanStart() {
		return belotstate.New(belotstate.ErrWrongPhase, "game cannot start from its current state")
	}

	g.shuffleSeatsIntoTeams()
	g.dealer = g.rng.Intn(4)
	g.Status = StatusInProgress
	g.appendHistory(fmt.Sprintf("game started, dealer seat %d", g.dealer))

	return g.startNextRound()
}

// shuffleSeatsIntoTeams randomly pairs the four seated players into two
// teams of two, then re-fixes the seat order so partners sit across the
// table (seats 0<->2 as team A, 1<->3 as team B).
func (g *Game) shuffleSeatsIntoTeams() {
	players := append([]string(nil), g.players[:]...)
	g.rng.Shuffle(len(players), func(i, j int) { players[i], players[j] = players[j], players[i] })

	// players[0],players[1] become team A; players[2],players[3] team B.
	var newOrder [4]string
	newOrder[0], newOrder[2] = players[0], players[1]
	newOrder[1], newOrder[3] = players[2], players[3]
	g.players = newOrder
}

// startNextRound creates and deals the next round with the current dealer.
func (g *Game) startNextRound() *belotstate.GameError {
	r := round.New(len(g.history)+1, g.dealer)
	if err := r.Deal(g.rng); err != nil {
		return err
	}
	g.current = r
	g.appendHistory(fmt.Sprintf("round %d dealt, dealer seat %d", r.Number, g.dealer))
	return nil
}

// advanceRound finalizes the just-completed current round into history,
// checks for a game winner, and either starts the next round or completes
// the game. It returns the round_completed event and, if the game just
// ended, the game_completed event that follows it.
func (g *Game) advanceRound() ([]OutboundEvent, *belotstate.GameError) {
	result := g.current.Result()
	_, callingTeam := g.current.Caller()
	number := g.current.Number

	g.teamAScore += result.TeamATotal
	g.teamBScore += result.TeamBTotal

	g.history = append(g.history, RoundSummary{
		Number:      number,
		Dealer:      g.current.Dealer,
		CallingTeam: callingTeam,
		Result:      *result,
	})
	g.appendHistory(fmt.Sprintf("round %d complete: A=%d B=%d", number, g.teamAScore, g.teamBScore))

	events := []OutboundEvent{{
		Kind:  "round_completed",
		Topic: g.ID,
		Payload: RoundCompletedPayload{
			Number:     number,
			TeamAScore: g.teamAScore,
			TeamBScore: g.teamBScore,
			Result:     *result,
		},
	}}

	winner := scoring.GameWinner(g.teamAScore, g.teamBScore, g.Config.PointsToWin, callingTeam)
	if winner.HasWinner {
		g.Status = StatusCompleted
		g.EndReason = EndReasonWon
		g.Winner = winner.Winner
		g.current = nil
		g.appendHistory(fmt.Sprintf("game completed, winner team %s", winner.Winner))
		g.notifyStats()
		events = append(events, OutboundEvent{
			Kind:  "game_completed",
			Topic: g.ID,
			Payload: GameCompletedPayload{Winner: winner.Winner, TeamAScore: g.teamAScore, TeamBScore: g.teamBScore},
		})
		return events, nil
	}

	g.dealer = (g.dealer + 1) % 4
	if err := g.startNextRound(); err != nil {
		return nil, err
	}
	return events, nil
}

// notifyStats emits one delta per seated player to the attached StatsSink,
// if any. Called exactly once, when the game reaches Completed.
func (g *Game) notifyStats() {
	if g.stats == nil {
		return
	}
	deltas := make([]PlayerStatsDelta, 0, 4)
	for seat, playerID := range g.players {
		if playerID == "" {
			continue
		}
		team := belotstate.SeatTeam(seat)
		pointsFor, pointsAgainst := g.teamAScore, g.teamBScore
		if team == belotstate.TeamB {
			pointsFor, pointsAgainst = g.teamBScore, g.teamAScore
		}
		deltas = append(deltas, PlayerStatsDelta{
			PlayerID:      playerID,
			Won:           team == g.Winner,
			PointsFor:     pointsFor,
			PointsAgainst: pointsAgainst,
		})
	}
	g.stats.RecordGameResult(g.ID, deltas)
}
