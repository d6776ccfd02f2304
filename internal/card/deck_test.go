package card

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDeckHas32UniqueCards(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))
	require.Equal(t, 32, d.Size())

	seen := make(map[Card]bool)
	for _, s := range AllSuits() {
		for _, r := range AllRanks() {
			seen[New(s, r)] = false
		}
	}
	for d.Size() > 0 {
		c, ok := d.Draw()
		require.True(t, ok)
		require.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	for c, wasSeen := range seen {
		require.True(t, wasSeen, "card %s never dealt", c)
	}
}

func TestDealProducesDisjointHands(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(42)))
	hands := d.Deal(4, 8)
	require.Len(t, hands, 4)

	all := make(map[Card]int)
	for _, h := range hands {
		require.Len(t, h, 8)
		for _, c := range h {
			all[c]++
		}
	}
	require.Len(t, all, 32)
	for c, n := range all {
		require.Equal(t, 1, n, "card %s dealt %d times", c, n)
	}
	require.Equal(t, 0, d.Size())
}

func TestSeededShuffleIsDeterministic(t *testing.T) {
	d1 := NewDeck(rand.New(rand.NewSource(99)))
	d2 := NewDeck(rand.New(rand.NewSource(99)))
	require.Equal(t, d1.Deal(4, 8), d2.Deal(4, 8))
}
