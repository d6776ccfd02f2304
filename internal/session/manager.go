// Package session implements the process-wide Session Manager: the
// registry of live Game and Room actors, join-code lookup, and per-user
// membership tracking described in SPEC_FULL §4.6.
package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/slog"

	"github.com/bela4us/belotsrv/internal/belotstate"
	"github.com/bela4us/belotsrv/internal/broadcast"
	"github.com/bela4us/belotsrv/internal/gamesession"
	"github.com/bela4us/belotsrv/internal/ids"
	"github.com/bela4us/belotsrv/internal/room"
)

// Config carries the Session Manager's tunable options (SPEC_FULL §6).
type Config struct {
	EventTimeout    time.Duration
	RoomIdleTimeout time.Duration
	InvitationTTL   time.Duration
	MaxChatRetained int
}

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{
		EventTimeout:    5 * time.Second,
		RoomIdleTimeout: time.Hour,
		InvitationTTL:   24 * time.Hour,
		MaxChatRetained: 200,
	}
}

type gameActor struct {
	*actorRuntime
	game      *gamesession.Game
	lastTouch time.Time
}

type roomActor struct {
	*actorRuntime
	room      *room.Room
	lastTouch time.Time
}

// Manager is the process-wide coordinator. It holds no game/room logic
// itself: it only creates actors, routes events to the right one, and
// reaps idle entities.
type Manager struct {
	mu sync.RWMutex

	games     map[string]*gameActor
	rooms     map[string]*roomActor
	codeIndex map[string]string            // join code -> room id
	members   map[string]map[string]bool   // user id -> set of entity ids (game or room)

	cfg         Config
	log         slog.Logger
	rng         *rand.Rand
	nowFn       func() time.Time
	stats       gamesession.StatsSink
	broadcaster broadcast.Broadcaster
}

// NewManager creates an empty Session Manager. broadcaster may be nil, in
// which case outbound state events are simply not published.
func NewManager(cfg Config, log slog.Logger, rng *rand.Rand, stats gamesession.StatsSink, broadcaster broadcast.Broadcaster) *Manager {
	return &Manager{
		games:       make(map[string]*gameActor),
		rooms:       make(map[string]*roomActor),
		codeIndex:   make(map[string]string),
		members:     make(map[string]map[string]bool),
		cfg:         cfg,
		log:         log,
		rng:         rng,
		nowFn:       time.Now,
		stats:       stats,
		broadcaster: broadcaster,
	}
}

func (m *Manager) trackMembership(userID, entityID string) {
	if m.members[userID] == nil {
		m.members[userID] = make(map[string]bool)
	}
	m.members[userID][entityID] = true
}

// Memberships returns the set of entity ids userID currently belongs to.
func (m *Manager) Memberships(userID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.members[userID]))
	for id := range m.members[userID] {
		out = append(out, id)
	}
	return out
}

// CreateRoom creates and registers a new Room, generating a collision-free
// join code.
func (m *Manager) CreateRoom(creator string, private bool) *room.Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	code := room.GenerateJoinCode(m.rng)
	for {
		if _, taken := m.codeIndex[code]; !taken {
			break
		}
		code = room.GenerateJoinCode(m.rng)
	}

	id := ids.NewRoomID()
	r := room.New(id, creator, private, m.rng, m.nowFn, code)
	r.Join(creator) // an empty, just-created room always has room for its creator

	actor := &roomActor{actorRuntime: newActorRuntime(), room: r, lastTouch: m.nowFn()}
	go actor.run()

	m.rooms[id] = actor
	m.codeIndex[code] = id
	m.trackMembership(creator, id)
	return r
}

// RoomByCode looks up a live room by its join code.
func (m *Manager) RoomByCode(code string) (*room.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.codeIndex[code]
	if !ok {
		return nil, false
	}
	actor, ok := m.rooms[id]
	return actor.room, ok
}

// DispatchRoom runs fn against the room identified by id, serialized with
// every other event targeting that room, and returns whatever fn returns
// (or a timeout error if the room is backed up past EventTimeout).
func (m *Manager) DispatchRoom(id string, fn func(*room.Room) *belotstate.GameError) *belotstate.GameError {
	m.mu.RLock()
	actor, ok := m.rooms[id]
	m.mu.RUnlock()
	if !ok {
		return belotstate.New(belotstate.ErrNotFound, "room not found")
	}

	result := make(chan *belotstate.GameError, 1)
	accepted := actor.enqueue(func() {
		actor.lastTouch = m.nowFn()
		result <- fn(actor.room)
	})
	if !accepted {
		if m.log != nil {
			m.log.Errorf("room %s mailbox full, dropping event", id)
		}
		return belotstate.New(belotstate.ErrTimeout, "room is backed up, try again")
	}

	select {
	case err := <-result:
		if err == nil && m.broadcaster != nil {
			m.broadcaster.Send(id, broadcast.Event{Kind: "room_state", Topic: id, Payload: actor.room.Members()})
		}
		return err
	case <-time.After(m.cfg.EventTimeout):
		if m.log != nil {
			m.log.Warnf("room %s event timed out, members at timeout: %s", id, spew.Sdump(actor.room.Members()))
		}
		return belotstate.New(belotstate.ErrTimeout, "room event handler timed out")
	}
}

// CreateGameFromRoom moves a ready room into Starting, materializes and
// starts a Game seating every current room member, and closes the room.
func (m *Manager) CreateGameFromRoom(r *room.Room, cfg gamesession.Config) (*gamesession.Game, *belotstate.GameError) {
	if err := r.StartGame(); err != nil {
		return nil, err
	}

	id := ids.NewGameID()
	g := gamesession.New(id, r.Creator, r.Private, cfg, m.rng, m.log)
	if m.stats != nil {
		g.SetStatsSink(m.stats)
	}
	for _, playerID := range r.PlayerIDs() {
		if _, err := g.Seat(playerID); err != nil {
			return nil, err
		}
	}
	if err := g.Start(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	actor := &gameActor{actorRuntime: newActorRuntime(), game: g, lastTouch: m.nowFn()}
	go actor.run()
	m.games[id] = actor
	for _, playerID := range r.PlayerIDs() {
		m.trackMembership(playerID, id)
	}
	m.mu.Unlock()

	if err := r.Close(); err != nil {
		return nil, err
	}
	return g, nil
}

// DispatchGame runs fn against the game identified by id, serialized with
// every other event targeting that game.
func (m *Manager) DispatchGame(id string, fn func(*gamesession.Game) (*gamesession.ApplyResult, *belotstate.GameError)) (*gamesession.ApplyResult, *belotstate.GameError) {
	m.mu.RLock()
	actor, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return nil, belotstate.New(belotstate.ErrNotFound, "game not found")
	}

	type outcome struct {
		result *gamesession.ApplyResult
		err    *belotstate.GameError
	}
	resultCh := make(chan outcome, 1)
	accepted := actor.enqueue(func() {
		actor.lastTouch = m.nowFn()
		res, err := fn(actor.game)
		resultCh <- outcome{res, err}
	})
	if !accepted {
		if m.log != nil {
			m.log.Errorf("game %s mailbox full, dropping event", id)
		}
		return nil, belotstate.New(belotstate.ErrTimeout, "game is backed up, try again")
	}

	select {
	case out := <-resultCh:
		if out.err == nil && m.broadcaster != nil && out.result != nil {
			for _, ev := range out.result.Broadcasts {
				m.broadcaster.Send(ev.Topic, broadcast.Event{Kind: ev.Kind, Topic: ev.Topic, Payload: ev.Payload})
			}
		}
		return out.result, out.err
	case <-time.After(m.cfg.EventTimeout):
		return nil, belotstate.New(belotstate.ErrTimeout, "game event handler timed out")
	}
}

// ReapIdleRooms disposes of rooms that have no members and have seen no
// dispatched event for longer than RoomIdleTimeout, per SPEC_FULL §4.6.
func (m *Manager) ReapIdleRooms() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	limit := reapBatchSize()
	disposed := 0
	for id, actor := range m.rooms {
		if limit > 0 && disposed >= limit {
			break
		}
		if len(actor.room.Members()) > 0 {
			continue
		}
		if m.nowFn().Sub(actor.lastTouch) < m.cfg.RoomIdleTimeout {
			continue
		}
		actor.Stop()
		delete(m.rooms, id)
		delete(m.codeIndex, actor.room.JoinCode)
		disposed++
	}
	m.logRSSOnDispose(disposed)
	return disposed
}

// ReleaseCompletedGames removes games that have reached a terminal status
// from the registry, freeing their memory once final state has broadcast.
func (m *Manager) ReleaseCompletedGames() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	released := 0
	for id, actor := range m.games {
		if actor.game.Status == gamesession.StatusCompleted {
			actor.Stop()
			delete(m.games, id)
			released++
		}
	}
	return released
}
