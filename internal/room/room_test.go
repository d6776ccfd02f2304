package room

import (
	"math/rand"
	"testing"
	"time"

	"github.com/bela4us/belotsrv/internal/belotstate"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestRoom(t *testing.T, private bool) *Room {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	code := GenerateJoinCode(rng)
	r := New("room-1", "alice", private, rng, fixedClock(time.Unix(0, 0)), code)
	require.Nil(t, r.Join("alice"))
	return r
}

func TestGenerateJoinCodeShapeIsSixUppercaseAlnum(t *testing.T) {
	code := GenerateJoinCode(rand.New(rand.NewSource(2)))
	require.Len(t, code, 6)
	for _, c := range code {
		require.Contains(t, joinCodeAlphabet, string(c))
	}
}

func TestJoinFillsRoomAndTransitionsToFull(t *testing.T) {
	r := newTestRoom(t, false)
	require.Nil(t, r.Join("bob"))
	require.Nil(t, r.Join("carol"))
	require.Equal(t, StatusOpen, r.Status)
	require.Nil(t, r.Join("dave"))
	require.Equal(t, StatusFull, r.Status)

	err := r.Join("eve")
	require.NotNil(t, err)
	require.Equal(t, belotstate.ErrCapacity, err.Kind)
}

func TestPrivateRoomRequiresAcceptedInvitation(t *testing.T) {
	r := newTestRoom(t, true)
	err := r.Join("bob")
	require.NotNil(t, err)
	require.Equal(t, belotstate.ErrForbidden, err.Kind)

	require.Nil(t, r.Invite("alice", "bob"))
	require.Nil(t, r.AcceptInvitation("bob"))
	require.True(t, r.IsMember("bob"))
}

func TestDeclinedInvitationLeavesRoomUnchanged(t *testing.T) {
	r := newTestRoom(t, true)
	require.Nil(t, r.Invite("alice", "bob"))
	require.Nil(t, r.DeclineInvitation("bob"))
	require.False(t, r.IsMember("bob"))

	err := r.AcceptInvitation("bob")
	require.NotNil(t, err)
	require.Equal(t, belotstate.ErrConflict, err.Kind)
}

func TestExpiredInvitationCannotBeAccepted(t *testing.T) {
	start := time.Unix(0, 0)
	clock := &struct{ t time.Time }{t: start}
	r := New("room-1", "alice", true, rand.New(rand.NewSource(1)), func() time.Time { return clock.t }, "ABC123")
	require.Nil(t, r.Join("alice"))
	require.Nil(t, r.Invite("alice", "bob"))

	clock.t = start.Add(25 * time.Hour)
	err := r.AcceptInvitation("bob")
	require.NotNil(t, err)
	require.Equal(t, belotstate.ErrConflict, err.Kind)

	inv, ok := r.Invitation("bob")
	require.True(t, ok)
	require.Equal(t, InvitationExpired, inv.Status)
}

func TestOwnershipTransfersToEarliestJoinedRemainingMember(t *testing.T) {
	r := newTestRoom(t, false)
	require.Nil(t, r.Join("bob"))
	require.Nil(t, r.Join("carol"))

	require.Nil(t, r.Leave("alice"))
	require.Equal(t, "bob", r.Creator)
}

func TestLeaveFromFullReturnsToOpen(t *testing.T) {
	r := newTestRoom(t, false)
	require.Nil(t, r.Join("bob"))
	require.Nil(t, r.Join("carol"))
	require.Nil(t, r.Join("dave"))
	require.Equal(t, StatusFull, r.Status)

	require.Nil(t, r.Leave("bob"))
	require.Equal(t, StatusOpen, r.Status)
}

func TestStartGameRequiresFourReadyMembers(t *testing.T) {
	r := newTestRoom(t, false)
	require.Nil(t, r.Join("bob"))
	require.Nil(t, r.Join("carol"))
	require.Nil(t, r.Join("dave"))

	err := r.StartGame()
	require.NotNil(t, err)
	require.Equal(t, belotstate.ErrWrongPhase, err.Kind)

	for _, id := range r.PlayerIDs() {
		require.Nil(t, r.ToggleReady(id))
	}
	require.True(t, r.CanStart())
	require.Nil(t, r.StartGame())
	require.Equal(t, StatusStarting, r.Status)

	require.Nil(t, r.Close())
	require.Equal(t, StatusClosed, r.Status)
}

func TestChatRequiresMembership(t *testing.T) {
	r := newTestRoom(t, false)
	err := r.PostChat("stranger", "hi")
	require.NotNil(t, err)
	require.Equal(t, belotstate.ErrNotMember, err.Kind)

	require.Nil(t, r.PostChat("alice", "hello"))
	require.Len(t, r.Chat(), 1)
}

func TestChatLogIsBoundedToMaxRetained(t *testing.T) {
	r := newTestRoom(t, false)
	for i := 0; i < maxChatLog+10; i++ {
		require.Nil(t, r.PostChat("alice", "msg"))
	}
	require.Len(t, r.Chat(), maxChatLog)
}
