package card

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCardValue(t *testing.T) {
	j := New(Hearts, Jack)
	require.Equal(t, 20, j.Value(Hearts), "jack of trump is worth 20")
	require.Equal(t, 2, j.Value(Spades), "jack off-trump is worth 2")

	nine := New(Hearts, Nine)
	require.Equal(t, 14, nine.Value(Hearts))
	require.Equal(t, 0, nine.Value(Spades))
}

func TestCardBeatsTrumpOrder(t *testing.T) {
	trump := Hearts
	jack := New(Hearts, Jack)
	nine := New(Hearts, Nine)
	ace := New(Hearts, Ace)

	require.True(t, jack.Beats(nine, trump))
	require.True(t, nine.Beats(ace, trump))
	require.False(t, ace.Beats(jack, trump))
}

func TestCardBeatsPlainOrder(t *testing.T) {
	trump := Hearts // unrelated to the suit being compared
	ace := New(Spades, Ace)
	ten := New(Spades, Ten)
	king := New(Spades, King)

	require.True(t, ace.Beats(ten, trump))
	require.True(t, ten.Beats(king, trump))
}

func TestCardCodeRoundTrip(t *testing.T) {
	for _, s := range AllSuits() {
		for _, r := range AllRanks() {
			c := New(s, r)
			parsed, err := FromCode(c.String())
			require.NoError(t, err)
			require.Equal(t, c, parsed)
		}
	}
}

func TestFromCodeInvalid(t *testing.T) {
	_, err := FromCode("ZZ")
	require.Error(t, err)
	_, err = FromCode("A")
	require.Error(t, err)
}
