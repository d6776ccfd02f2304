// Package store defines the narrow persistence boundary the Session
// Manager depends on. Concrete adapters (internal/store/sqlite) implement
// it; callers here never see SQL.
package store

import "time"

// GameSnapshot is the upsert-keyed persisted state of one Game.
type GameSnapshot struct {
	ID           string
	Creator      string
	Private      bool
	PointsToWin  int
	Status       string
	PlayersJSON  string // JSON-encoded [4]string seat assignment
	TeamAScore   int
	TeamBScore   int
	Dealer       int
	UpdatedAt    time.Time
}

// RoundSnapshot is the upsert-keyed persisted state of one Round within a
// Game, reconstructable replay state: starting hands plus move/declaration
// history (loaded separately via LoadMoves/LoadDeclarations).
type RoundSnapshot struct {
	GameID     string
	Number     int
	Dealer     int
	Phase      string
	HandsJSON  string // JSON-encoded [4][]string card codes, as dealt
	TrumpSuit  int
	HasTrump   bool
	CallerSeat int
}

// MoveRecord is one append-only played card, in play order.
type MoveRecord struct {
	GameID    string
	Round     int
	Seq       int
	Seat      int
	CardCode  string
	PlayedAt  time.Time
}

// DeclarationRecord is one append-only accepted declaration.
type DeclarationRecord struct {
	GameID   string
	Round    int
	Seat     int
	Category string
	Value    int
	CardsCSV string
}

// RoomSnapshot is the upsert-keyed persisted state of one Room.
type RoomSnapshot struct {
	ID        string
	JoinCode  string
	Creator   string
	Private   bool
	Status    string
	UpdatedAt time.Time
}

// MembershipRecord is one seated Room member.
type MembershipRecord struct {
	RoomID   string
	PlayerID string
	Ready    bool
	JoinedAt time.Time
}

// ChatRecord is one append-only Room chat message.
type ChatRecord struct {
	RoomID   string
	Seq      int64
	SenderID string
	Body     string
	At       time.Time
}

// InvitationRecord is the upsert-keyed state of one Room invitation.
type InvitationRecord struct {
	RoomID    string
	InviteeID string
	Status    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store is the persistence boundary. Every Save* call must be snapshot
// isolated: concurrent readers never observe a partially applied delta.
type Store interface {
	LoadGame(id string) (*GameSnapshot, error)
	SaveGame(snap GameSnapshot) error
	SaveRound(snap RoundSnapshot) error
	AppendMove(move MoveRecord) error
	AppendDeclaration(decl DeclarationRecord) error
	LoadMoves(gameID string, round int) ([]MoveRecord, error)
	LoadDeclarations(gameID string, round int) ([]DeclarationRecord, error)

	LoadRoom(id string) (*RoomSnapshot, error)
	SaveRoom(snap RoomSnapshot) error
	FindRoomByCode(code string) (*RoomSnapshot, error)
	SaveMembership(m MembershipRecord) error
	RemoveMembership(roomID, playerID string) error
	AppendChat(msg ChatRecord) error
	SaveInvitation(inv InvitationRecord) error

	Close() error
}
