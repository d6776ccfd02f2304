package rules

import (
	"testing"

	"github.com/bela4us/belotsrv/internal/card"
	"github.com/stretchr/testify/require"
)

// Scenario A from the spec: minimal trump trick.
func TestTrickWinner_ScenarioA(t *testing.T) {
	trump := card.Hearts
	tr := &Trick{}
	tr.Play(0, card.New(card.Spades, card.Seven)) // P1
	tr.Play(1, card.New(card.Spades, card.Ace))   // P2
	tr.Play(2, card.New(card.Hearts, card.Seven)) // P3 trumps
	tr.Play(3, card.New(card.Spades, card.Eight)) // P4

	require.Equal(t, card.Spades, tr.LeadSuit)
	require.Equal(t, 2, TrickWinner(tr, trump))

	points := 0
	for _, pc := range tr.Cards {
		points += pc.Card.Value(trump)
	}
	require.Equal(t, 11, points)
}

func TestTrickWinnerInvariantUnderRotationNotUnderLeadSwap(t *testing.T) {
	trump := card.Hearts

	base := []PlayedCard{
		{Seat: 0, Card: card.New(card.Spades, card.King)},
		{Seat: 1, Card: card.New(card.Spades, card.Ace)},
		{Seat: 2, Card: card.New(card.Clubs, card.Nine)},
		{Seat: 3, Card: card.New(card.Spades, card.Queen)},
	}
	t1 := &Trick{Cards: base, LeadSuit: card.Spades, HasLead: true}

	// Rotate the play order but re-anchor the led suit (still Spades,
	// first-played card still establishes it): winner card identity is
	// unchanged.
	rotated := []PlayedCard{base[1], base[2], base[3], base[0]}
	t2 := &Trick{Cards: rotated, LeadSuit: card.Spades, HasLead: true}
	w1 := t1.Cards[indexOfSeat(t1, TrickWinner(t1, trump))]
	w2 := t2.Cards[indexOfSeat(t2, TrickWinner(t2, trump))]
	require.Equal(t, w1.Card, w2.Card)

	// Swapping the led suit (pretend Clubs was led instead) changes the
	// winner: now the Nine of Clubs wins as the only led-suit card.
	t3 := &Trick{Cards: base, LeadSuit: card.Clubs, HasLead: true}
	require.Equal(t, 2, TrickWinner(t3, trump))
	require.NotEqual(t, TrickWinner(t1, trump), TrickWinner(t3, trump))
}

func indexOfSeat(t *Trick, seat int) int {
	for i, pc := range t.Cards {
		if pc.Seat == seat {
			return i
		}
	}
	return -1
}
