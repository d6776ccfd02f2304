// Package sqlite is the sqlite3-backed reference implementation of
// internal/store.Store, grounded on the teacher's internal/db package: one
// table per upsert-keyed aggregate, one append-only table per log, every
// write wrapped in a transaction with a deferred rollback.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bela4us/belotsrv/internal/store"
)

// DB wraps a sqlite3 connection implementing store.Store.
type DB struct {
	*sql.DB
}

// Open creates (or opens) the sqlite database at path, creating every
// table it needs if missing.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := createTables(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &DB{conn}, nil
}

func createTables(conn *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			creator TEXT NOT NULL,
			private BOOLEAN NOT NULL DEFAULT FALSE,
			points_to_win INTEGER NOT NULL DEFAULT 1001,
			status TEXT NOT NULL DEFAULT 'waiting',
			players_json TEXT NOT NULL DEFAULT '["","","",""]',
			team_a_score INTEGER NOT NULL DEFAULT 0,
			team_b_score INTEGER NOT NULL DEFAULT 0,
			dealer INTEGER NOT NULL DEFAULT 0,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS rounds (
			game_id TEXT NOT NULL,
			number INTEGER NOT NULL,
			dealer INTEGER NOT NULL,
			phase TEXT NOT NULL,
			hands_json TEXT NOT NULL,
			trump_suit INTEGER NOT NULL DEFAULT -1,
			has_trump BOOLEAN NOT NULL DEFAULT FALSE,
			caller_seat INTEGER NOT NULL DEFAULT -1,
			PRIMARY KEY (game_id, number),
			FOREIGN KEY (game_id) REFERENCES games(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS moves (
			game_id TEXT NOT NULL,
			round INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			seat INTEGER NOT NULL,
			card_code TEXT NOT NULL,
			played_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (game_id, round, seq)
		)`,
		`CREATE TABLE IF NOT EXISTS declarations (
			game_id TEXT NOT NULL,
			round INTEGER NOT NULL,
			seat INTEGER NOT NULL,
			category TEXT NOT NULL,
			value INTEGER NOT NULL,
			cards_csv TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS rooms (
			id TEXT PRIMARY KEY,
			join_code TEXT NOT NULL UNIQUE,
			creator TEXT NOT NULL,
			private BOOLEAN NOT NULL DEFAULT FALSE,
			status TEXT NOT NULL DEFAULT 'open',
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS memberships (
			room_id TEXT NOT NULL,
			player_id TEXT NOT NULL,
			ready BOOLEAN NOT NULL DEFAULT FALSE,
			joined_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (room_id, player_id),
			FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			room_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			sender_id TEXT NOT NULL,
			body TEXT NOT NULL,
			at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (room_id, seq)
		)`,
		`CREATE TABLE IF NOT EXISTS invitations (
			room_id TEXT NOT NULL,
			invitee_id TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMP,
			expires_at TIMESTAMP,
			PRIMARY KEY (room_id, invitee_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) LoadGame(id string) (*store.GameSnapshot, error) {
	var s store.GameSnapshot
	err := db.QueryRow(`SELECT id, creator, private, points_to_win, status, players_json,
		team_a_score, team_b_score, dealer, updated_at FROM games WHERE id = ?`, id).
		Scan(&s.ID, &s.Creator, &s.Private, &s.PointsToWin, &s.Status, &s.PlayersJSON,
			&s.TeamAScore, &s.TeamBScore, &s.Dealer, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (db *DB) SaveGame(s store.GameSnapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO games (id, creator, private, points_to_win, status, players_json,
			team_a_score, team_b_score, dealer, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status, players_json = excluded.players_json,
			team_a_score = excluded.team_a_score, team_b_score = excluded.team_b_score,
			dealer = excluded.dealer, updated_at = excluded.updated_at`,
		s.ID, s.Creator, s.Private, s.PointsToWin, s.Status, s.PlayersJSON,
		s.TeamAScore, s.TeamBScore, s.Dealer, time.Now())
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (db *DB) SaveRound(s store.RoundSnapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO rounds (game_id, number, dealer, phase, hands_json,
			trump_suit, has_trump, caller_seat)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id, number) DO UPDATE SET
			phase = excluded.phase, trump_suit = excluded.trump_suit,
			has_trump = excluded.has_trump, caller_seat = excluded.caller_seat`,
		s.GameID, s.Number, s.Dealer, s.Phase, s.HandsJSON, s.TrumpSuit, s.HasTrump, s.CallerSeat)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (db *DB) AppendMove(m store.MoveRecord) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO moves (game_id, round, seq, seat, card_code, played_at)
		VALUES (?, ?, ?, ?, ?, ?)`, m.GameID, m.Round, m.Seq, m.Seat, m.CardCode, m.PlayedAt)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (db *DB) AppendDeclaration(d store.DeclarationRecord) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO declarations (game_id, round, seat, category, value, cards_csv)
		VALUES (?, ?, ?, ?, ?, ?)`, d.GameID, d.Round, d.Seat, d.Category, d.Value, d.CardsCSV)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (db *DB) LoadMoves(gameID string, round int) ([]store.MoveRecord, error) {
	rows, err := db.Query(`SELECT game_id, round, seq, seat, card_code, played_at
		FROM moves WHERE game_id = ? AND round = ? ORDER BY seq ASC`, gameID, round)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.MoveRecord
	for rows.Next() {
		var m store.MoveRecord
		if err := rows.Scan(&m.GameID, &m.Round, &m.Seq, &m.Seat, &m.CardCode, &m.PlayedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (db *DB) LoadDeclarations(gameID string, round int) ([]store.DeclarationRecord, error) {
	rows, err := db.Query(`SELECT game_id, round, seat, category, value, cards_csv
		FROM declarations WHERE game_id = ? AND round = ?`, gameID, round)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.DeclarationRecord
	for rows.Next() {
		var d store.DeclarationRecord
		if err := rows.Scan(&d.GameID, &d.Round, &d.Seat, &d.Category, &d.Value, &d.CardsCSV); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (db *DB) LoadRoom(id string) (*store.RoomSnapshot, error) {
	var s store.RoomSnapshot
	err := db.QueryRow(`SELECT id, join_code, creator, private, status, updated_at
		FROM rooms WHERE id = ?`, id).
		Scan(&s.ID, &s.JoinCode, &s.Creator, &s.Private, &s.Status, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("room %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (db *DB) FindRoomByCode(code string) (*store.RoomSnapshot, error) {
	var s store.RoomSnapshot
	err := db.QueryRow(`SELECT id, join_code, creator, private, status, updated_at
		FROM rooms WHERE join_code = ?`, code).
		Scan(&s.ID, &s.JoinCode, &s.Creator, &s.Private, &s.Status, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no room with join code %s", code)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (db *DB) SaveRoom(s store.RoomSnapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO rooms (id, join_code, creator, private, status, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			creator = excluded.creator, status = excluded.status, updated_at = excluded.updated_at`,
		s.ID, s.JoinCode, s.Creator, s.Private, s.Status, time.Now())
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (db *DB) SaveMembership(m store.MembershipRecord) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO memberships (room_id, player_id, ready, joined_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(room_id, player_id) DO UPDATE SET ready = excluded.ready`,
		m.RoomID, m.PlayerID, m.Ready, m.JoinedAt)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (db *DB) RemoveMembership(roomID, playerID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM memberships WHERE room_id = ? AND player_id = ?`, roomID, playerID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (db *DB) AppendChat(msg store.ChatRecord) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO chat_messages (room_id, seq, sender_id, body, at)
		VALUES (?, ?, ?, ?, ?)`, msg.RoomID, msg.Seq, msg.SenderID, msg.Body, msg.At)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (db *DB) SaveInvitation(inv store.InvitationRecord) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO invitations (room_id, invitee_id, status, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(room_id, invitee_id) DO UPDATE SET status = excluded.status`,
		inv.RoomID, inv.InviteeID, inv.Status, inv.CreatedAt, inv.ExpiresAt)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (db *DB) Close() error {
	return db.DB.Close()
}

var _ store.Store = (*DB)(nil)
