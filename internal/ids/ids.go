// Package ids generates the stable identifiers used for Games and Rooms.
package ids

import "github.com/google/uuid"

// NewGameID returns a fresh, globally unique Game identifier.
func NewGameID() string {
	return "game_" + uuid.NewString()
}

// NewRoomID returns a fresh, globally unique Room identifier.
func NewRoomID() string {
	return "room_" + uuid.NewString()
}
