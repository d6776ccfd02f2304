package rules

import "github.com/bela4us/belotsrv/internal/card"

// ValidMoves returns the cards hand may legally play into trick, given
// trump. The caller must supply the seat that owns hand and the trick so
// far, so partner/opponent relationships (seats 0/2 = team A, 1/3 = team B)
// can be resolved. It always returns a non-empty subset of hand when hand
// is non-empty.
func ValidMoves(hand card.Hand, seat int, trick *Trick, trump card.Suit) []card.Card {
	if len(trick.Cards) == 0 {
		return append([]card.Card(nil), hand...)
	}

	leadSuit := trick.LeadSuit
	if hand.HasSuit(leadSuit) {
		return validFollowingLead(hand, seat, trick, leadSuit, trump)
	}
	return validVoidOfLead(hand, seat, trick, trump)
}

// validFollowingLead handles the case where the player holds the led suit.
func validFollowingLead(hand card.Hand, seat int, trick *Trick, leadSuit, trump card.Suit) []card.Card {
	suited := hand.OfSuit(leadSuit)

	if leadSuit == trump {
		// Must follow trump, and must overtake the current highest trump
		// if able.
		highest, ok := highestOfSuit(trick, trump, trump)
		if !ok {
			return suited
		}
		if beaters := cardsBeating(suited, highest, trump); len(beaters) > 0 {
			return beaters
		}
		return suited
	}

	// Led suit is not trump.
	trumpInTrick, trumpPlayed := highestTrumpInTrick(trick, trump)
	if trumpPlayed {
		// A trump is already in and winning: free choice between
		// following suit or trumping over it.
		out := append([]card.Card(nil), suited...)
		out = append(out, cardsBeating(hand, trumpInTrick, trump)...)
		return dedupe(out)
	}

	// No trump played yet: must follow suit, and must overtake the
	// current highest led-suit card if able (must-overtrump-in-led-suit).
	highest, ok := highestOfSuit(trick, leadSuit, trump)
	if !ok {
		return suited
	}
	if beaters := cardsBeating(suited, highest, trump); len(beaters) > 0 {
		return beaters
	}
	return suited
}

// validVoidOfLead handles the case where the player holds none of the led
// suit.
func validVoidOfLead(hand card.Hand, seat int, trick *Trick, trump card.Suit) []card.Card {
	winner, ok := currentWinner(trick, trump)
	trumps := hand.OfSuit(trump)

	if ok && winner.Card.IsTrump(trump) {
		if sameTeam(seat, winner.Seat) {
			// Partner is winning with a trump already: no obligation.
			return append([]card.Card(nil), hand...)
		}
		// Opponent is winning with a trump: must overtrump if possible,
		// else any trump, else any card.
		if beaters := cardsBeating(trumps, winner.Card, trump); len(beaters) > 0 {
			return beaters
		}
		if len(trumps) > 0 {
			return trumps
		}
		return append([]card.Card(nil), hand...)
	}

	// No trump currently in the trick.
	if len(trumps) > 0 {
		// Mandatory trumping when void of the led suit.
		return trumps
	}
	return append([]card.Card(nil), hand...)
}

// highestTrumpInTrick returns the highest trump card played in the trick,
// if any.
func highestTrumpInTrick(t *Trick, trump card.Suit) (card.Card, bool) {
	return highestOfSuit(t, trump, trump)
}

// cardsBeating returns the subset of cards that beat target within suit
// (cards must share target's suit to be comparable this way: either both
// trump, or both the same led suit).
func cardsBeating(cards []card.Card, target card.Card, trump card.Suit) []card.Card {
	var out []card.Card
	for _, c := range cards {
		if c.Suit != target.Suit {
			continue
		}
		if c.Beats(target, trump) {
			out = append(out, c)
		}
	}
	return out
}

// sameTeam reports whether two seats are partners.
func sameTeam(a, b int) bool {
	return a%2 == b%2
}

func dedupe(cards []card.Card) []card.Card {
	seen := make(map[card.Card]bool, len(cards))
	out := make([]card.Card, 0, len(cards))
	for _, c := range cards {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
