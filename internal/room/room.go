// Package room implements the pre-game lobby: membership, ready flags,
// chat, and invitations, prior to a Room handing off into a Game.
package room

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/bela4us/belotsrv/internal/belotstate"
)

// Status is the Room's lifecycle status.
type Status string

const (
	StatusOpen     Status = "open"
	StatusFull     Status = "full"
	StatusStarting Status = "starting"
	StatusClosed   Status = "closed"
)

const (
	maxMembers     = 4
	joinCodeLen    = 6
	maxChatLog     = 200
	maxEventLog    = 200
	invitationTTL  = 24 * time.Hour
)

const joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ChatMessage is one retained chat line.
type ChatMessage struct {
	Seq      int64
	SenderID string
	Body     string
	At       time.Time
}

// LogEntry is one retained lobby event (join, leave, ready toggle, invite).
type LogEntry struct {
	Seq     int64
	Message string
	At      time.Time
}

// InvitationStatus is the state of one outstanding invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
	InvitationExpired  InvitationStatus = "expired"
)

// Invitation is a private room's invite to a non-member.
type Invitation struct {
	InviteeID string
	Status    InvitationStatus
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Member is one seated lobby participant.
type Member struct {
	PlayerID string
	Ready    bool
	JoinedAt time.Time
}

// Room is the serialized per-entity aggregate for one pre-game lobby. Like
// Game, it does no internal locking; callers are expected to serialize
// access through a single-actor dispatcher (see internal/session).
type Room struct {
	ID       string
	JoinCode string
	Creator  string
	Private  bool
	Status   Status

	members []Member // joined order, len <= maxMembers

	invitations map[string]*Invitation // invitee id -> invitation

	chat []ChatMessage
	log  []LogEntry

	chatSeq int64
	logSeq  int64

	rng *rand.Rand
	now func() time.Time
}

// New creates an Open room with no members and the given joinCode (the
// Session Manager supplies one that it has checked for collisions against
// the join codes of the rooms it currently holds).
func New(id, creator string, private bool, rng *rand.Rand, now func() time.Time, joinCode string) *Room {
	if now == nil {
		now = time.Now
	}
	return &Room{
		ID:          id,
		JoinCode:    joinCode,
		Creator:     creator,
		Private:     private,
		Status:      StatusOpen,
		invitations: make(map[string]*Invitation),
		rng:         rng,
		now:         now,
	}
}

// GenerateJoinCode draws a random 6-character uppercase alphanumeric code.
// The caller (Session Manager) is responsible for regenerating on collision
// against the set of currently live join codes.
func GenerateJoinCode(rng *rand.Rand) string {
	buf := make([]byte, joinCodeLen)
	for i := range buf {
		buf[i] = joinCodeAlphabet[rng.Intn(len(joinCodeAlphabet))]
	}
	return string(buf)
}

func (r *Room) memberIndex(playerID string) int {
	for i, m := range r.members {
		if m.PlayerID == playerID {
			return i
		}
	}
	return -1
}

// IsMember reports whether playerID currently occupies a seat.
func (r *Room) IsMember(playerID string) bool {
	return r.memberIndex(playerID) >= 0
}

// Members returns a snapshot of the current membership, in join order.
func (r *Room) Members() []Member {
	return append([]Member(nil), r.members...)
}

func (r *Room) appendLog(format string, args ...interface{}) {
	r.logSeq++
	r.log = append(r.log, LogEntry{Seq: r.logSeq, Message: fmt.Sprintf(format, args...), At: r.now()})
	if len(r.log) > maxEventLog {
		r.log = r.log[len(r.log)-maxEventLog:]
	}
}

// Log returns the bounded lobby event log.
func (r *Room) Log() []LogEntry {
	return append([]LogEntry(nil), r.log...)
}

// Chat returns the bounded chat log.
func (r *Room) Chat() []ChatMessage {
	return append([]ChatMessage(nil), r.chat...)
}

// PostChat appends a chat message from a current member.
func (r *Room) PostChat(playerID, body string) *belotstate.GameError {
	if r.Status == StatusClosed {
		return belotstate.New(belotstate.ErrWrongPhase, "room is closed")
	}
	if !r.IsMember(playerID) {
		return belotstate.New(belotstate.ErrNotMember, "only members may chat")
	}
	r.chatSeq++
	r.chat = append(r.chat, ChatMessage{Seq: r.chatSeq, SenderID: playerID, Body: body, At: r.now()})
	if len(r.chat) > maxChatLog {
		r.chat = r.chat[len(r.chat)-maxChatLog:]
	}
	return nil
}
