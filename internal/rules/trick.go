// Package rules implements the pure, stateless Belot rules: legal plays,
// trick resolution, declaration detection, and bid legality.
package rules

import "github.com/bela4us/belotsrv/internal/card"

// PlayedCard is one entry in a Trick.
type PlayedCard struct {
	Seat int
	Card card.Card
}

// Trick is the ordered sequence of cards played so far in the current
// trick, together with the led suit (set by the first card played).
type Trick struct {
	Cards    []PlayedCard
	LeadSuit card.Suit
	HasLead  bool
}

// Play appends a card to the trick, fixing the led suit if this is the
// first card.
func (t *Trick) Play(seat int, c card.Card) {
	if !t.HasLead {
		t.LeadSuit = c.Suit
		t.HasLead = true
	}
	t.Cards = append(t.Cards, PlayedCard{Seat: seat, Card: c})
}

// IsComplete reports whether all four players have played.
func (t *Trick) IsComplete() bool {
	return len(t.Cards) >= 4
}

// TrickWinner returns the seat of the winning card: the highest trump if
// any was played, otherwise the highest card of the led suit.
func TrickWinner(t *Trick, trump card.Suit) int {
	if len(t.Cards) == 0 {
		return -1
	}

	winner := t.Cards[0]
	for _, pc := range t.Cards[1:] {
		if beatsInTrick(pc.Card, winner.Card, t.LeadSuit, trump) {
			winner = pc
		}
	}
	return winner.Seat
}

// beatsInTrick reports whether candidate currently beats best, given the
// trick's led suit and the round's trump.
func beatsInTrick(candidate, best card.Card, leadSuit, trump card.Suit) bool {
	candTrump := candidate.IsTrump(trump)
	bestTrump := best.IsTrump(trump)

	switch {
	case candTrump && !bestTrump:
		return true
	case !candTrump && bestTrump:
		return false
	case candTrump && bestTrump:
		return candidate.Beats(best, trump)
	default:
		// Neither is trump: only a led-suit card can win, and only a
		// higher led-suit card can beat another led-suit card.
		if candidate.Suit != leadSuit {
			return false
		}
		if best.Suit != leadSuit {
			return true
		}
		return candidate.Beats(best, trump)
	}
}

// highestOfSuit returns the highest card of suit currently in the trick,
// and whether any such card exists.
func highestOfSuit(t *Trick, suit card.Suit, trump card.Suit) (card.Card, bool) {
	var best card.Card
	found := false
	for _, pc := range t.Cards {
		if pc.Card.Suit != suit {
			continue
		}
		if !found || pc.Card.Beats(best, trump) {
			best = pc.Card
			found = true
		}
	}
	return best, found
}

// currentWinner returns the seat and card currently winning the (possibly
// incomplete) trick, given trump.
func currentWinner(t *Trick, trump card.Suit) (PlayedCard, bool) {
	if len(t.Cards) == 0 {
		return PlayedCard{}, false
	}
	best := t.Cards[0]
	for _, pc := range t.Cards[1:] {
		if beatsInTrick(pc.Card, best.Card, t.LeadSuit, trump) {
			best = pc
		}
	}
	return best, true
}
