package round

import (
	"github.com/bela4us/belotsrv/internal/belotstate"
	"github.com/bela4us/belotsrv/internal/card"
	"github.com/bela4us/belotsrv/internal/rules"
	"github.com/bela4us/belotsrv/internal/scoring"
)

// Bid sets trump, chosen by seat, and moves the round into Declaring.
func (r *Round) Bid(seat int, trump card.Suit) *belotstate.GameError {
	if r.Phase != PhaseBidding {
		return belotstate.New(belotstate.ErrWrongPhase, "not in bidding phase")
	}
	if !rules.LegalBid(rules.PhaseBidding, seat, r.currentBidder()) {
		return belotstate.New(belotstate.ErrNotYourTurn, "not this seat's turn to bid")
	}

	r.trump = trump
	r.hasTrump = true
	r.caller = seat
	r.callingTeam = belotstate.SeatTeam(seat)
	r.Phase = PhaseDeclaring
	return nil
}

// Pass records a pass by seat. If all four players pass, the dealer keeps
// the turn and is forced to choose trump on their next Bid call (a further
// Pass from the dealer is illegal).
func (r *Round) Pass(seat int) *belotstate.GameError {
	if r.Phase != PhaseBidding {
		return belotstate.New(belotstate.ErrWrongPhase, "not in bidding phase")
	}
	if !rules.LegalBid(rules.PhaseBidding, seat, r.currentBidder()) {
		return belotstate.New(belotstate.ErrNotYourTurn, "not this seat's turn to bid")
	}
	if r.passes == 4 {
		return belotstate.New(belotstate.ErrIllegalMove, "dealer must choose a trump after all four pass")
	}

	r.passes++
	if r.passes < 4 {
		r.bidderIdx++
	}
	return nil
}

// Declare records a declaration by seat. The server recomputes detected
// declarations from the player's actual hand and only accepts a
// declaration that exactly matches one of the detected set.
func (r *Round) Declare(seat int, decl rules.Declaration) *belotstate.GameError {
	if r.Phase != PhaseDeclaring {
		return belotstate.New(belotstate.ErrWrongPhase, "not in declaring phase")
	}
	if r.declareActed[seat] {
		return belotstate.New(belotstate.ErrIllegalMove, "seat already acted for declarations")
	}

	detected := rules.DetectDeclarations(r.hands[seat], r.trump)
	matched := false
	for _, d := range detected {
		if d.Category == decl.Category && sameCards(d.Cards, decl.Cards) {
			matched = true
			break
		}
	}
	if !matched {
		return belotstate.New(belotstate.ErrIllegalMove, "declaration does not match detected hand")
	}

	r.declared = append(r.declared, DeclaredMeld{Seat: seat, Decl: decl})
	return nil
}

// SkipDeclare records that seat has no declarations to announce (or
// chooses not to announce any), advancing the declaring turn.
func (r *Round) SkipDeclare(seat int) *belotstate.GameError {
	if r.Phase != PhaseDeclaring {
		return belotstate.New(belotstate.ErrWrongPhase, "not in declaring phase")
	}
	if r.declareActed[seat] {
		return belotstate.New(belotstate.ErrIllegalMove, "seat already acted for declarations")
	}
	r.markDeclareActed(seat)
	return nil
}

// markDeclareActed finishes seat's declaring turn, and transitions to
// Playing once all four seats have acted.
func (r *Round) markDeclareActed(seat int) {
	r.declareActed[seat] = true
	for _, acted := range r.declareActed {
		if !acted {
			return
		}
	}
	r.leader = (r.Dealer + 1) % 4
	r.current = rules.Trick{}
	r.Phase = PhasePlaying
}

func sameCards(a, b []card.Card) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[card.Card]int, len(a))
	for _, c := range a {
		seen[c]++
	}
	for _, c := range b {
		if seen[c] == 0 {
			return false
		}
		seen[c]--
	}
	return true
}

// AnnounceBelot records the unconditional 20-point belot bonus, valid
// whenever seat holds both king and queen of trump. It may be called at
// any point during Declaring or Playing, matching the rule that belot is
// validated "at the moment of first playing either of" the pair.
func (r *Round) AnnounceBelot(seat int) *belotstate.GameError {
	if r.Phase != PhaseDeclaring && r.Phase != PhasePlaying {
		return belotstate.New(belotstate.ErrWrongPhase, "belot may only be announced while declaring or playing")
	}
	if r.belotAnnounced {
		return belotstate.New(belotstate.ErrIllegalMove, "belot already announced this round")
	}
	king := card.New(r.trump, card.King)
	queen := card.New(r.trump, card.Queen)
	if !r.hands[seat].Contains(king) || !r.hands[seat].Contains(queen) {
		return belotstate.New(belotstate.ErrIllegalMove, "seat does not hold king and queen of trump")
	}
	r.belotAnnounced = true
	r.belotSeat = seat
	return nil
}

// PlayCard plays card c from seat's hand into the current trick. On the
// fourth card of a trick, the winner is computed and leads the next trick;
// after the eighth trick the round moves to Scoring and then Done.
func (r *Round) PlayCard(seat int, c card.Card) *belotstate.GameError {
	if r.Phase != PhasePlaying {
		return belotstate.New(belotstate.ErrWrongPhase, "not in playing phase")
	}
	expected := r.CurrentActor()
	if seat != expected {
		return belotstate.New(belotstate.ErrNotYourTurn, "not this seat's turn to play")
	}
	if !r.hands[seat].Contains(c) {
		return belotstate.New(belotstate.ErrIllegalMove, "card not in hand")
	}

	legal := rules.ValidMoves(r.hands[seat], seat, &r.current, r.trump)
	if !containsCard(legal, c) {
		return belotstate.New(belotstate.ErrIllegalMove, "card is not a legal play")
	}

	r.hands[seat] = r.hands[seat].Without(c)
	r.current.Play(seat, c)

	if r.current.IsComplete() {
		r.completeTrick()
	}
	return nil
}

func containsCard(cards []card.Card, c card.Card) bool {
	for _, cc := range cards {
		if cc == c {
			return true
		}
	}
	return false
}

// completeTrick resolves the just-finished trick, records it, and either
// starts the next trick or moves to Scoring after the eighth.
func (r *Round) completeTrick() {
	winner := rules.TrickWinner(&r.current, r.trump)
	r.trickHistory = append(r.trickHistory, CompletedTrickRecord{
		Cards:  append([]rules.PlayedCard(nil), r.current.Cards...),
		Winner: winner,
	})

	r.leader = winner
	r.current = rules.Trick{}

	if len(r.trickHistory) == 8 {
		r.Phase = PhaseScoring
		r.resolveScoring()
		r.Phase = PhaseDone
	}
}

// resolveScoring computes the round's final scores from trick history,
// declarations, and the belot bonus, applying the fall/pad rule.
func (r *Round) resolveScoring() {
	var callingTotals, opponentTotals scoring.RoundTotals

	for i, trick := range r.trickHistory {
		var cards []card.Card
		for _, pc := range trick.Cards {
			cards = append(cards, pc.Card)
		}
		isLast := i == len(r.trickHistory)-1
		points := scoring.TrickPoints(cards, r.trump, isLast)
		team := belotstate.SeatTeam(trick.Winner)

		if team == r.callingTeam {
			callingTotals.TrickPoints += points
			callingTotals.TricksWon++
		} else {
			opponentTotals.TrickPoints += points
			opponentTotals.TricksWon++
		}
	}

	var teamADecls, teamBDecls []rules.Declaration
	for _, dm := range r.declared {
		if belotstate.SeatTeam(dm.Seat) == belotstate.TeamA {
			teamADecls = append(teamADecls, dm.Decl)
		} else {
			teamBDecls = append(teamBDecls, dm.Decl)
		}
	}
	declResult := scoring.ResolveDeclarations(teamADecls, teamBDecls, r.callingTeam)
	if declResult.HasWinner {
		if declResult.Winner == r.callingTeam {
			callingTotals.DeclarationPoints = declResult.WinnerPoints
		} else {
			opponentTotals.DeclarationPoints = declResult.WinnerPoints
		}
	}

	if r.belotAnnounced {
		if belotstate.SeatTeam(r.belotSeat) == r.callingTeam {
			callingTotals.BelotBonus = 20
		} else {
			opponentTotals.BelotBonus = 20
		}
	}

	result := scoring.ResolveRound(r.callingTeam, callingTotals, opponentTotals)
	r.result = &result
}

// LegalActions enumerates the event kinds valid from the current state,
// for pre-validation by a transport layer without round-tripping an event.
func (r *Round) LegalActions() []string {
	switch r.Phase {
	case PhaseBidding:
		return []string{"bid_trump", "pass_trump"}
	case PhaseDeclaring:
		return []string{"declare", "skip_declare", "announce_belot"}
	case PhasePlaying:
		return []string{"play_card", "announce_belot"}
	default:
		return nil
	}
}
