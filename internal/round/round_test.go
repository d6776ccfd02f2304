package round

import (
	"math/rand"
	"testing"

	"github.com/bela4us/belotsrv/internal/belotstate"
	"github.com/bela4us/belotsrv/internal/card"
	"github.com/bela4us/belotsrv/internal/rules"
	"github.com/stretchr/testify/require"
)

func newDealtRound(t *testing.T, dealer int, seed int64) *Round {
	t.Helper()
	r := New(1, dealer)
	require.Nil(t, r.Deal(rand.New(rand.NewSource(seed))))
	return r
}

func TestDealTransitionsToBiddingWithDisjointHands(t *testing.T) {
	r := newDealtRound(t, 0, 7)
	require.Equal(t, PhaseBidding, r.Phase)

	all := make(map[card.Card]int)
	for seat := 0; seat < 4; seat++ {
		require.Len(t, r.Hand(seat), 8)
		for _, c := range r.Hand(seat) {
			all[c]++
		}
	}
	require.Len(t, all, 32)
}

func TestBiddingOrderStartsLeftOfDealer(t *testing.T) {
	r := newDealtRound(t, 2, 1)
	require.Equal(t, 3, r.CurrentActor())
}

func TestForcedBidOnAllPass(t *testing.T) {
	r := newDealtRound(t, 0, 2)
	require.Nil(t, r.Pass(1))
	require.Nil(t, r.Pass(2))
	require.Nil(t, r.Pass(3))
	require.Nil(t, r.Pass(0))

	// Dealer (seat 0) may not pass a second time around.
	err := r.Pass(0)
	require.NotNil(t, err)
	require.Equal(t, belotstate.ErrIllegalMove, err.Kind)

	require.Nil(t, r.Bid(0, card.Hearts))
	require.Equal(t, PhaseDeclaring, r.Phase)
	seat, team := r.Caller()
	require.Equal(t, 0, seat)
	require.Equal(t, belotstate.TeamA, team)
}

func TestBidByWrongActorRejected(t *testing.T) {
	r := newDealtRound(t, 0, 3)
	err := r.Bid(2, card.Spades) // seat 1 should act first
	require.NotNil(t, err)
	require.Equal(t, belotstate.ErrNotYourTurn, err.Kind)
}

func TestDeclarePhaseAdvancesAfterAllFourAct(t *testing.T) {
	r := newDealtRound(t, 0, 4)
	require.Nil(t, r.Bid(1, card.Hearts))
	require.Equal(t, PhaseDeclaring, r.Phase)

	for seat := 0; seat < 4; seat++ {
		require.Nil(t, r.SkipDeclare((r.Dealer+1+seat)%4))
	}
	require.Equal(t, PhasePlaying, r.Phase)
	require.Equal(t, (r.Dealer+1)%4, r.CurrentActor())
}

func TestPlayCardRejectsIllegalMoveAndOutOfTurn(t *testing.T) {
	r := newDealtRound(t, 0, 5)
	require.Nil(t, r.Bid(1, card.Hearts))
	for seat := 0; seat < 4; seat++ {
		require.Nil(t, r.SkipDeclare((r.Dealer+1+seat)%4))
	}

	leader := r.CurrentActor()
	other := (leader + 1) % 4
	err := r.PlayCard(other, r.Hand(other)[0])
	require.NotNil(t, err)
	require.Equal(t, belotstate.ErrNotYourTurn, err.Kind)

	fakeCard := card.New(card.Spades, card.Seven)
	hand := r.Hand(leader)
	if hand.Contains(fakeCard) {
		fakeCard = card.New(card.Hearts, card.Seven)
	}
	if !hand.Contains(fakeCard) {
		err = r.PlayCard(leader, fakeCard)
		require.NotNil(t, err)
		require.Equal(t, belotstate.ErrIllegalMove, err.Kind)
	}
}

func TestFullRoundReachesDoneWithEightTricks(t *testing.T) {
	r := newDealtRound(t, 0, 11)
	require.Nil(t, r.Bid(1, card.Hearts))
	for seat := 0; seat < 4; seat++ {
		require.Nil(t, r.SkipDeclare((r.Dealer+1+seat)%4))
	}

	trump, _ := r.Trump()
	for trick := 0; trick < 8; trick++ {
		for i := 0; i < 4; i++ {
			actor := r.CurrentActor()
			legal := rules.ValidMoves(r.Hand(actor), actor, trickPtr(r), trump)
			require.NotEmpty(t, legal)
			require.Nil(t, r.PlayCard(actor, legal[0]))
		}
	}

	require.True(t, r.IsDone())
	require.NotNil(t, r.Result())
	require.Len(t, r.TrickHistory(), 8)
}

func trickPtr(r *Round) *rules.Trick {
	t := r.CurrentTrick()
	return &t
}

func TestAnnounceBelotUnconditionalBonus(t *testing.T) {
	r := newDealtRound(t, 0, 6)
	require.Nil(t, r.Bid(0, card.Hearts))
	for seat := 0; seat < 4; seat++ {
		require.Nil(t, r.SkipDeclare((r.Dealer+1+seat)%4))
	}

	// Find whichever seat actually holds K+Q of trump, if any; skip
	// otherwise (the deal is random-seeded so not every seed has belot).
	trump, _ := r.Trump()
	king := card.New(trump, card.King)
	queen := card.New(trump, card.Queen)
	for seat := 0; seat < 4; seat++ {
		if r.Hand(seat).Contains(king) && r.Hand(seat).Contains(queen) {
			require.Nil(t, r.AnnounceBelot(seat))
			err := r.AnnounceBelot(seat)
			require.NotNil(t, err)
			require.Equal(t, belotstate.ErrIllegalMove, err.Kind)
			return
		}
	}
}
