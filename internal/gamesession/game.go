// Package gamesession implements the Game (session) component: a sequence
// of Rounds played to a configurable point threshold, owning team
// assignment, dealer rotation, accumulated scores, idempotent event
// sequencing, and player departure handling.
package gamesession

import (
	"math/rand"

	"github.com/bela4us/belotsrv/internal/belotstate"
	"github.com/bela4us/belotsrv/internal/round"
	"github.com/bela4us/belotsrv/internal/scoring"
	"github.com/decred/slog"
)

// Status is the Game's lifecycle status.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusReady      Status = "ready"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// EndReason explains why a Completed game ended.
type EndReason string

const (
	EndReasonNone       EndReason = ""
	EndReasonWon        EndReason = "won"
	EndReasonPlayerLeft EndReason = "player_left"
)

// Config carries the Game's tunable options (SPEC_FULL §6/§10), following
// the teacher's flat TableConfig convention rather than a config framework.
type Config struct {
	PointsToWin int // default 1001, must be in [501,2001] and ≡1 mod 10
}

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{PointsToWin: 1001}
}

// PlayerStatsDelta is emitted once per seated player when a Game completes,
// through the StatsSink interface (SPEC_FULL §4.4/§12). Aggregation and
// storage are explicitly external; this module only produces the delta.
type PlayerStatsDelta struct {
	PlayerID      string
	Won           bool
	PointsFor     int
	PointsAgainst int
}

// StatsSink receives end-of-game statistics deltas. Implementations live
// outside this module (user statistics aggregation is an external
// collaborator per SPEC_FULL §1).
type StatsSink interface {
	RecordGameResult(gameID string, deltas []PlayerStatsDelta)
}

// HistoryEntry is one bounded, human-readable narrative line appended as
// the game progresses (bids, declarations, round results), grounded on the
// original's GameHistory log.
type HistoryEntry struct {
	Seq     int64
	Message string
}

const maxHistoryRetained = 500

// RoundSummary is what's kept in the Game's round history after a round
// finishes: enough to reconstruct scores and audit play, without keeping
// the full Round object alive.
type RoundSummary struct {
	Number      int
	Dealer      int
	CallingTeam belotstate.Team
	Result      scoring.RoundResult
}

// Game is the serialized per-entity aggregate for one Belot session. All
// mutating methods are meant to be invoked one at a time by a single-actor
// caller (see internal/session); Game itself does no internal locking.
type Game struct {
	ID      string
	Creator string
	Private bool
	Config  Config

	Status     Status
	EndReason  EndReason
	Winner     belotstate.Team
	HasWinner  bool

	// Seats 0-3, fixed order once the game starts. players[i] == "" means
	// the seat is vacant (only possible pre-start).
	players [4]string
	active  [4]bool // false if a player is currently disconnected

	dealer int

	teamAScore int
	teamBScore int

	current *round.Round
	history []RoundSummary
	log     []HistoryEntry
	historySeq int64

	rng *rand.Rand

	// lastAppliedSeq enforces idempotency: events with seq <= this are
	// rejected as stale/duplicate except the exact case seq ==
	// lastAppliedSeq, which is acknowledged as a replay with no broadcasts.
	lastAppliedSeq   int64
	lastResultCached *ApplyResult

	logger slog.Logger
	stats  StatsSink
}

// ApplyResult is the outcome of applying one inbound event to the Game.
type ApplyResult struct {
	Seq       int64
	Replayed  bool // true if this was an idempotent replay, not a fresh mutation
	Broadcasts []OutboundEvent
}

// OutboundEvent is one event the Game wants delivered via the Broadcaster,
// matching the outbound event kinds of SPEC_FULL §6.
type OutboundEvent struct {
	Kind    string
	Topic   string // user id or the Game's own id
	Payload interface{}
}

// New creates a Game in Waiting status with no players seated.
func New(id, creator string, private bool, cfg Config, rng *rand.Rand, logger slog.Logger) *Game {
	return &Game{
		ID:      id,
		Creator: creator,
		Private: private,
		Config:  cfg,
		Status:  StatusWaiting,
		rng:     rng,
		logger:  logger,
	}
}

// SetStatsSink attaches the sink notified once on game completion. Optional;
// a Game with no sink attached simply skips the notification.
func (g *Game) SetStatsSink(sink StatsSink) {
	g.stats = sink
}

// Seat places playerID into the first vacant seat, returning the seat
// index, or a capacity error if all four seats are taken.
func (g *Game) Seat(playerID string) (int, *belotstate.GameError) {
	if g.Status != StatusWaiting {
		return -1, belotstate.New(belotstate.ErrWrongPhase, "game is not accepting players")
	}
	for i, p := range g.players {
		if p == "" {
			g.players[i] = playerID
			g.active[i] = true
			if g.seatedCount() == 4 {
				g.Status = StatusReady
			}
			return i, nil
		}
	}
	return -1, belotstate.New(belotstate.ErrCapacity, "game is full")
}

func (g *Game) seatedCount() int {
	n := 0
	for _, p := range g.players {
		if p != "" {
			n++
		}
	}
	return n
}

func (g *Game) seatOf(playerID string) int {
	for i, p := range g.players {
		if p == playerID {
			return i
		}
	}
	return -1
}

func (g *Game) appendHistory(message string) {
	g.historySeq++
	g.log = append(g.log, HistoryEntry{Seq: g.historySeq, Message: message})
	if len(g.log) > maxHistoryRetained {
		g.log = g.log[len(g.log)-maxHistoryRetained:]
	}
}

// History returns the bounded narrative log.
func (g *Game) History() []HistoryEntry {
	return append([]HistoryEntry(nil), g.log...)
}

// RoundHistory returns the completed-round summaries.
func (g *Game) RoundHistory() []RoundSummary {
	return append([]RoundSummary(nil), g.history...)
}

// Scores returns the accumulated team scores.
func (g *Game) Scores() (teamA, teamB int) {
	return g.teamAScore, g.teamBScore
}

// CurrentRound returns the in-progress round, or nil if none.
func (g *Game) CurrentRound() *round.Round {
	return g.current
}

// PlayerAt returns the player id seated at seat (0-3), or "" if vacant.
func (g *Game) PlayerAt(seat int) string {
	if seat < 0 || seat > 3 {
		return ""
	}
	return g.players[seat]
}

// IsPlayerTurn reports whether playerID is the expected actor in the
// current round (a read-only convenience query, SPEC_FULL §12).
func (g *Game) IsPlayerTurn(playerID string) bool {
	if g.current == nil {
		return false
	}
	seat := g.seatOf(playerID)
	return seat >= 0 && seat == g.current.CurrentActor()
}

// CanStart reports whether Start would currently succeed.
func (g *Game) CanStart() bool {
	if g.Status != StatusReady && g.Status != StatusWaiting {
		return false
	}
	if g.seatedCount() != 4 {
		return false
	}
	for _, a := range g.active {
		if !a {
			return false
		}
	}
	return true
}
