// Package card implements the Belot card model: a 32-card deck with the
// two point valuations (trump/non-trump) and the two rank orders the game
// requires to settle tricks and detect declarations.
package card

import "fmt"

// Suit is one of the four French suits.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

var suitNames = [...]string{"S", "H", "D", "C"}

func (s Suit) String() string {
	if int(s) < 0 || int(s) >= len(suitNames) {
		return "?"
	}
	return suitNames[s]
}

// AllSuits lists the four suits in a fixed, stable order.
func AllSuits() []Suit { return []Suit{Spades, Hearts, Diamonds, Clubs} }

// Rank is one of the eight Belot ranks.
type Rank int

const (
	Seven Rank = iota
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankCodes = [...]string{"7", "8", "9", "0", "J", "Q", "K", "A"}

func (r Rank) String() string {
	if int(r) < 0 || int(r) >= len(rankCodes) {
		return "?"
	}
	return rankCodes[r]
}

// AllRanks lists the eight ranks in a fixed, stable order.
func AllRanks() []Rank {
	return []Rank{Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}
}

// nonTrumpValue is the point value of a rank when its suit is not trump.
var nonTrumpValue = [...]int{Seven: 0, Eight: 0, Nine: 0, Ten: 10, Jack: 2, Queen: 3, King: 4, Ace: 11}

// trumpValue is the point value of a rank when its suit is trump.
var trumpValue = [...]int{Seven: 0, Eight: 0, Queen: 3, King: 4, Ten: 10, Ace: 11, Nine: 14, Jack: 20}

// plainOrder gives the winning-power rank of a non-trump card when its
// suit is led: higher index beats lower index.
var plainOrder = [...]int{Seven: 0, Eight: 1, Nine: 2, Jack: 3, Queen: 4, King: 5, Ten: 6, Ace: 7}

// trumpOrder gives the winning-power rank of a trump card: higher index
// beats lower index. Jack and Nine are promoted above Ace in trump.
var trumpOrder = [...]int{Seven: 0, Eight: 1, Queen: 2, King: 3, Ten: 4, Ace: 5, Nine: 6, Jack: 7}

// sequenceOrder gives each rank's position in the declaration-sequence
// order 7<8<9<J<Q<K<10<A, used to detect consecutive runs.
var sequenceOrder = [...]int{Seven: 0, Eight: 1, Nine: 2, Jack: 3, Queen: 4, King: 5, Ten: 6, Ace: 7}

// Card is an immutable Suit/Rank pair.
type Card struct {
	Suit Suit
	Rank Rank
}

// New builds a Card.
func New(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String renders the 2-character persistence code: rank+suit, e.g. "AH",
// "0D" for ten of diamonds.
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Value returns the card's point value given the round's trump suit.
func (c Card) Value(trump Suit) int {
	if c.Suit == trump {
		return trumpValue[c.Rank]
	}
	return nonTrumpValue[c.Rank]
}

// IsTrump reports whether the card belongs to the trump suit.
func (c Card) IsTrump(trump Suit) bool {
	return c.Suit == trump
}

// powerOrder returns the rank's winning-power index in the context of the
// given trump (trumpOrder when the card is trump, plainOrder otherwise).
func (c Card) powerOrder(trump Suit) int {
	if c.IsTrump(trump) {
		return trumpOrder[c.Rank]
	}
	return plainOrder[c.Rank]
}

// Beats reports whether c outranks other, both assumed to be of the same
// suit (i.e. both follow the led suit, or both are trump).
func (c Card) Beats(other Card, trump Suit) bool {
	return c.powerOrder(trump) > other.powerOrder(trump)
}

// SequenceIndex returns the rank's position in the declaration-sequence
// order (7<8<9<J<Q<K<10<A).
func (c Card) SequenceIndex() int {
	return sequenceOrder[c.Rank]
}

// FromCode parses a 2-character persistence code such as "AH" or "0D".
func FromCode(code string) (Card, error) {
	if len(code) != 2 {
		return Card{}, fmt.Errorf("card: invalid code %q", code)
	}
	var rank Rank
	switch code[0] {
	case '7':
		rank = Seven
	case '8':
		rank = Eight
	case '9':
		rank = Nine
	case '0':
		rank = Ten
	case 'J':
		rank = Jack
	case 'Q':
		rank = Queen
	case 'K':
		rank = King
	case 'A':
		rank = Ace
	default:
		return Card{}, fmt.Errorf("card: invalid rank in code %q", code)
	}
	var suit Suit
	switch code[1] {
	case 'S':
		suit = Spades
	case 'H':
		suit = Hearts
	case 'D':
		suit = Diamonds
	case 'C':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("card: invalid suit in code %q", code)
	}
	return Card{Suit: suit, Rank: rank}, nil
}
