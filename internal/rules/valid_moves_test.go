package rules

import (
	"testing"

	"github.com/bela4us/belotsrv/internal/card"
	"github.com/stretchr/testify/require"
)

func TestValidMovesEmptyTrickAnyCard(t *testing.T) {
	hand := card.Hand{card.New(card.Spades, card.Seven), card.New(card.Hearts, card.Ace)}
	moves := ValidMoves(hand, 0, &Trick{}, card.Hearts)
	require.ElementsMatch(t, hand, moves)
}

// Scenario B: must-overtrump-in-led-suit.
func TestValidMoves_ScenarioB(t *testing.T) {
	trump := card.Hearts
	hand := card.Hand{
		card.New(card.Spades, card.Seven),
		card.New(card.Spades, card.Ace),
		card.New(card.Hearts, card.King),
	}
	tr := &Trick{}
	tr.Play(0, card.New(card.Spades, card.King)) // P1 leads K-spades

	moves := ValidMoves(hand, 1, tr, trump)
	require.Equal(t, []card.Card{card.New(card.Spades, card.Ace)}, moves)
}

// Scenario C: void of lead with no trump yet in the trick (the partner's
// ace of spades is winning), so the player must trump, free choice among
// trumps since there is no prior trump to beat.
func TestValidMoves_ScenarioC(t *testing.T) {
	trump := card.Hearts
	hand := card.Hand{
		card.New(card.Diamonds, card.Nine),
		card.New(card.Hearts, card.Jack),
		card.New(card.Hearts, card.Seven),
	}
	tr := &Trick{}
	tr.Play(0, card.New(card.Spades, card.Ace)) // P1
	tr.Play(1, card.New(card.Spades, card.Ten)) // P2, opponent of P3 (seat 2)

	moves := ValidMoves(hand, 2, tr, trump)
	require.ElementsMatch(t, []card.Card{
		card.New(card.Hearts, card.Jack),
		card.New(card.Hearts, card.Seven),
	}, moves)
}

func TestValidMovesNeverEmptyForNonEmptyHand(t *testing.T) {
	trump := card.Hearts
	hand := card.Hand{card.New(card.Diamonds, card.Seven)}
	tr := &Trick{}
	tr.Play(0, card.New(card.Spades, card.Ace))
	tr.Play(1, card.New(card.Hearts, card.Nine)) // opponent trumping

	moves := ValidMoves(hand, 2, tr, trump)
	require.NotEmpty(t, moves)
}

func TestValidMovesPartnerWinningNoObligation(t *testing.T) {
	trump := card.Hearts
	hand := card.Hand{
		card.New(card.Diamonds, card.Seven),
		card.New(card.Hearts, card.Jack),
	}
	tr := &Trick{}
	tr.Play(0, card.New(card.Spades, card.Seven))
	tr.Play(1, card.New(card.Hearts, card.Nine)) // seat 1, partner of seat 3
	tr.Play(2, card.New(card.Spades, card.Eight))

	// Seat 3's partner is seat 1, currently winning with trump; seat 3 is
	// void of the led suit (spades) and has no obligation to trump.
	moves := ValidMoves(hand, 3, tr, trump)
	require.ElementsMatch(t, hand, moves, "partner already winning with trump: no obligation")
}
