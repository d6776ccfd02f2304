package rules

import (
	"sort"

	"github.com/bela4us/belotsrv/internal/card"
)

// DeclarationCategory names a kind of declaration.
type DeclarationCategory string

const (
	DeclBelot        DeclarationCategory = "belot"
	DeclFourJacks    DeclarationCategory = "four_jacks"
	DeclFourNines    DeclarationCategory = "four_nines"
	DeclFourAces     DeclarationCategory = "four_aces"
	DeclFourKings    DeclarationCategory = "four_kings"
	DeclFourQueens   DeclarationCategory = "four_queens"
	DeclSequence3    DeclarationCategory = "sequence_3"
	DeclSequence4    DeclarationCategory = "sequence_4"
	DeclSequence5Plus DeclarationCategory = "sequence_5_plus"
)

// Declaration is one detected meld: its category, value, and the cards
// that compose it.
type Declaration struct {
	Category DeclarationCategory
	Value    int
	Cards    []card.Card
}

// fourOfAKindValue maps the rank of a four-of-a-kind to its point value.
// 7, 8, and 10 form no four-of-a-kind per the rules.
var fourOfAKindValue = map[card.Rank]int{
	card.Jack:  200,
	card.Nine:  150,
	card.Ace:   100,
	card.King:  100,
	card.Queen: 100,
}

var fourOfAKindCategory = map[card.Rank]DeclarationCategory{
	card.Jack:  DeclFourJacks,
	card.Nine:  DeclFourNines,
	card.Ace:   DeclFourAces,
	card.King:  DeclFourKings,
	card.Queen: DeclFourQueens,
}

// DetectDeclarations returns every declaration present in hand given the
// round's trump suit: belot, four-of-a-kinds, and maximal same-suit
// sequences of 3 or more consecutive ranks (in the Belot sequence order
// 7<8<9<J<Q<K<10<A).
func DetectDeclarations(hand card.Hand, trump card.Suit) []Declaration {
	var out []Declaration

	if d, ok := detectBelot(hand, trump); ok {
		out = append(out, d)
	}

	fours := detectFourOfAKind(hand)
	out = append(out, fours...)

	remaining := hand
	for _, d := range fours {
		for _, c := range d.Cards {
			remaining = remaining.Without(c)
		}
	}
	out = append(out, detectSequences(remaining)...)

	return out
}

func detectBelot(hand card.Hand, trump card.Suit) (Declaration, bool) {
	king := card.New(trump, card.King)
	queen := card.New(trump, card.Queen)
	if hand.Contains(king) && hand.Contains(queen) {
		return Declaration{Category: DeclBelot, Value: 20, Cards: []card.Card{king, queen}}, true
	}
	return Declaration{}, false
}

func detectFourOfAKind(hand card.Hand) []Declaration {
	bySuit := map[card.Rank][]card.Card{}
	for _, c := range hand {
		bySuit[c.Rank] = append(bySuit[c.Rank], c)
	}

	var out []Declaration
	for rank, cards := range bySuit {
		if len(cards) != 4 {
			continue
		}
		value, ok := fourOfAKindValue[rank]
		if !ok {
			continue
		}
		out = append(out, Declaration{
			Category: fourOfAKindCategory[rank],
			Value:    value,
			Cards:    append([]card.Card(nil), cards...),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

func sequenceValue(length int) int {
	switch {
	case length >= 5:
		return 100
	case length == 4:
		return 50
	case length == 3:
		return 20
	default:
		return 0
	}
}

// detectSequences finds, per suit, maximal runs of 3+ consecutive ranks in
// the declaration-sequence order. Overlapping shorter runs contained in a
// longer one are not separately reported.
func detectSequences(hand card.Hand) []Declaration {
	var out []Declaration

	for _, suit := range card.AllSuits() {
		cards := hand.OfSuit(suit)
		if len(cards) < 3 {
			continue
		}
		sort.Slice(cards, func(i, j int) bool {
			return cards[i].SequenceIndex() < cards[j].SequenceIndex()
		})

		runStart := 0
		for i := 1; i <= len(cards); i++ {
			broken := i == len(cards) || cards[i].SequenceIndex() != cards[i-1].SequenceIndex()+1
			if broken {
				length := i - runStart
				if length >= 3 {
					run := append([]card.Card(nil), cards[runStart:i]...)
					out = append(out, Declaration{
						Category: sequenceCategory(length),
						Value:    sequenceValue(length),
						Cards:    run,
					})
				}
				runStart = i
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

func sequenceCategory(length int) DeclarationCategory {
	switch {
	case length >= 5:
		return DeclSequence5Plus
	case length == 4:
		return DeclSequence4
	default:
		return DeclSequence3
	}
}
