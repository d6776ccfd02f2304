package gamesession

import (
	"math/rand"
	"testing"

	"github.com/bela4us/belotsrv/internal/belotstate"
	"github.com/bela4us/belotsrv/internal/card"
	"github.com/bela4us/belotsrv/internal/round"
	"github.com/bela4us/belotsrv/internal/rules"
	"github.com/decred/slog"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New("game-1", "alice", false, DefaultConfig(), rand.New(rand.NewSource(seed)), slog.Disabled)
	for _, p := range []string{"alice", "bob", "carol", "dave"} {
		_, err := g.Seat(p)
		require.Nil(t, err)
	}
	return g
}

func TestSeatFillsAndTransitionsToReady(t *testing.T) {
	g := New("game-1", "alice", false, DefaultConfig(), rand.New(rand.NewSource(1)), slog.Disabled)
	require.Equal(t, StatusWaiting, g.Status)
	for i, p := range []string{"alice", "bob", "carol", "dave"} {
		seat, err := g.Seat(p)
		require.Nil(t, err)
		require.Equal(t, i, seat)
	}
	require.Equal(t, StatusReady, g.Status)

	_, err := g.Seat("eve")
	require.NotNil(t, err)
	require.Equal(t, belotstate.ErrCapacity, err.Kind)
}

func TestStartAssignsTeamsAcrossTheTable(t *testing.T) {
	g := newTestGame(t, 42)
	require.Nil(t, g.Start())
	require.Equal(t, StatusInProgress, g.Status)
	require.NotNil(t, g.CurrentRound())

	seated := make(map[string]bool)
	for _, p := range g.players {
		require.False(t, seated[p])
		seated[p] = true
	}
}

func TestApplyRejectsStaleAndReplaysLastSeq(t *testing.T) {
	g := newTestGame(t, 3)
	require.Nil(t, g.Start())

	firstActor := g.current.CurrentActor()
	ev := Event{Seq: 1, Actor: g.players[firstActor], Kind: EventPassTrump}

	// A stale seat might be the forced dealer bid path; use Pass only if legal.
	_, gerr := g.Apply(ev)
	require.Nil(t, gerr)

	// Replaying the same seq returns a cached, non-mutating result.
	result, gerr := g.Apply(ev)
	require.Nil(t, gerr)
	require.True(t, result.Replayed)

	// A seq below the last applied one is rejected as stale.
	_, gerr = g.Apply(Event{Seq: 0, Actor: g.players[firstActor], Kind: EventPassTrump})
	require.NotNil(t, gerr)
}

func TestApplyRejectsUnknownActor(t *testing.T) {
	g := newTestGame(t, 3)
	require.Nil(t, g.Start())
	_, gerr := g.Apply(Event{Seq: 1, Actor: "not-a-player", Kind: EventPassTrump})
	require.NotNil(t, gerr)
	require.Equal(t, belotstate.ErrNotMember, gerr.Kind)
}

func TestLeaveBeforeStartFreesSeatAndDemotesToWaiting(t *testing.T) {
	g := newTestGame(t, 9)
	require.Equal(t, StatusReady, g.Status)

	_, gerr := g.handleLeave(1, "")
	require.Nil(t, gerr)
	require.Equal(t, StatusWaiting, g.Status)
	require.Equal(t, "", g.players[1])

	seat, err := g.Seat("zoe")
	require.Nil(t, err)
	require.Equal(t, 1, seat)
}

type fakeStatsSink struct {
	gameID string
	deltas []PlayerStatsDelta
}

func (f *fakeStatsSink) RecordGameResult(gameID string, deltas []PlayerStatsDelta) {
	f.gameID = gameID
	f.deltas = deltas
}

func TestForfeitInProgressEndsGameAndNotifiesStats(t *testing.T) {
	g := newTestGame(t, 5)
	sink := &fakeStatsSink{}
	g.SetStatsSink(sink)
	require.Nil(t, g.Start())

	leavingSeat := 2
	leavingPlayer := g.players[leavingSeat]
	events, gerr := g.handleLeave(leavingSeat, "connection lost")
	require.Nil(t, gerr)
	require.Len(t, events, 1)
	require.Equal(t, "game_completed", events[0].Kind)

	require.Equal(t, StatusCompleted, g.Status)
	require.Equal(t, EndReasonPlayerLeft, g.EndReason)
	require.True(t, g.HasWinner)
	require.Equal(t, belotstate.SeatTeam(leavingSeat).Other(), g.Winner)
	require.Equal(t, "game-1", sink.gameID)
	require.Len(t, sink.deltas, 4)

	for _, d := range sink.deltas {
		if d.PlayerID == leavingPlayer {
			require.False(t, d.Won)
		}
	}
}

func TestPlayThroughBiddingDeclaringAndFirstTrick(t *testing.T) {
	g := newTestGame(t, 17)
	require.Nil(t, g.Start())

	seq := int64(1)
	r := g.current
	for r.Phase == "bidding" {
		actor := r.CurrentActor()
		ev := Event{Seq: seq, Actor: g.players[actor], Kind: EventBidTrump, Trump: 0}
		if _, gerr := g.Apply(ev); gerr != nil {
			// not this seat's or an illegal forced pass; fall back to pass
			passEv := Event{Seq: seq, Actor: g.players[actor], Kind: EventPassTrump}
			_, gerr = g.Apply(passEv)
			require.Nil(t, gerr)
		}
		seq++
	}
	require.Equal(t, "declaring", string(r.Phase))

	for i := 0; i < 4; i++ {
		actor := r.CurrentActor()
		_, gerr := g.Apply(Event{Seq: seq, Actor: g.players[actor], Kind: EventDeclare, Decl: rules.Declaration{}})
		if gerr != nil {
			// no declaration matched; the seat had nothing to declare is
			// reported via skip semantics at the round layer, not reachable
			// here directly, so this path should not occur for an empty
			// Declaration value matching nothing -- use SkipDeclare instead.
			require.Nil(t, r.SkipDeclare(actor))
		}
		seq++
	}
	require.Equal(t, "playing", string(r.Phase))
}

func TestBidTrumpEmitsTrumpSelectedBroadcast(t *testing.T) {
	g := newTestGame(t, 7)
	require.Nil(t, g.Start())

	actor := g.current.CurrentActor()
	result, gerr := g.Apply(Event{Seq: 1, Actor: g.players[actor], Kind: EventBidTrump, Trump: card.Hearts})
	require.Nil(t, gerr)
	require.Len(t, result.Broadcasts, 1)
	require.Equal(t, "trump_selected", result.Broadcasts[0].Kind)

	payload, ok := result.Broadcasts[0].Payload.(TrumpSelectedPayload)
	require.True(t, ok)
	require.Equal(t, actor, payload.Seat)
	require.Equal(t, card.Hearts, payload.Suit)
}

func roundTrickPtr(r *round.Round) *rules.Trick {
	trick := r.CurrentTrick()
	return &trick
}

// Drives a full round to completion through Apply, the same way a real
// transport layer would, and checks the outbound events produced along
// the way carry the kinds SPEC_FULL §6 requires.
func TestFullRoundEmitsCardPlayedTrickCompletedAndRoundCompleted(t *testing.T) {
	g := newTestGame(t, 11)
	require.Nil(t, g.Start())

	seq := int64(1)
	apply := func(seat int, ev Event) *ApplyResult {
		ev.Seq = seq
		ev.Actor = g.players[seat]
		seq++
		result, gerr := g.Apply(ev)
		require.Nil(t, gerr)
		return result
	}

	bidder := g.current.CurrentActor()
	trumpResult := apply(bidder, Event{Kind: EventBidTrump, Trump: card.Hearts})
	require.Equal(t, "trump_selected", trumpResult.Broadcasts[0].Kind)

	for i := 0; i < 4; i++ {
		actor := g.current.CurrentActor()
		if _, gerr := g.Apply(Event{Seq: seq, Actor: g.players[actor], Kind: EventDeclare, Decl: rules.Declaration{}}); gerr != nil {
			require.Nil(t, g.current.SkipDeclare(actor))
		}
		seq++
	}
	require.Equal(t, "playing", string(g.current.Phase))

	trump, _ := g.current.Trump()
	var lastResult *ApplyResult
	for trick := 0; trick < 8; trick++ {
		for i := 0; i < 4; i++ {
			actor := g.current.CurrentActor()
			legal := rules.ValidMoves(g.current.Hand(actor), actor, roundTrickPtr(g.current), trump)
			require.NotEmpty(t, legal)
			lastResult = apply(actor, Event{Kind: EventPlayCard, Card: legal[0]})
		}
	}

	require.NotNil(t, lastResult)
	var kinds []string
	for _, ev := range lastResult.Broadcasts {
		kinds = append(kinds, ev.Kind)
	}
	require.Contains(t, kinds, "card_played")
	require.Contains(t, kinds, "trick_completed")
	require.Contains(t, kinds, "round_completed")
}
