package gamesession

import (
	"github.com/bela4us/belotsrv/internal/belotstate"
	"github.com/bela4us/belotsrv/internal/card"
	"github.com/bela4us/belotsrv/internal/rules"
	"github.com/bela4us/belotsrv/internal/scoring"
)

// TrumpSelectedPayload is the payload of a trump_selected outbound event.
type TrumpSelectedPayload struct {
	Seat int
	Suit card.Suit
}

// DeclarationsAnnouncedPayload is the payload of a declarations_announced
// outbound event.
type DeclarationsAnnouncedPayload struct {
	Seat        int
	Declaration rules.Declaration
}

// CardPlayedPayload is the payload of a card_played outbound event.
type CardPlayedPayload struct {
	Seat int
	Card card.Card
}

// TrickCompletedPayload is the payload of a trick_completed outbound event.
type TrickCompletedPayload struct {
	Winner int
	Points int
}

// RoundCompletedPayload is the payload of a round_completed outbound event.
type RoundCompletedPayload struct {
	Number     int
	TeamAScore int
	TeamBScore int
	Result     scoring.RoundResult
}

// GameCompletedPayload is the payload of a game_completed outbound event.
type GameCompletedPayload struct {
	Winner     belotstate.Team
	TeamAScore int
	TeamBScore int
}
