package gamesession

import (
	"fmt"

	"github.com/bela4us/belotsrv/internal/belotstate"
)

// handleLeave applies a player_left event for seat: before the start it
// frees the seat, and during play it ends the game as a forfeit. A
// pre-start leave does not reassign Creator and never disposes the game,
// even when the last player leaves.
func (g *Game) handleLeave(seat int, reason string) ([]OutboundEvent, *belotstate.GameError) {
	switch g.Status {
	case StatusWaiting, StatusReady:
		return nil, g.leaveBeforeStart(seat)
	case StatusInProgress:
		return g.forfeitInProgress(seat, reason)
	default:
		return nil, belotstate.New(belotstate.ErrWrongPhase, "game has already ended")
	}
}

// leaveBeforeStart frees seat's slot so another player may join it, and
// demotes a Ready game back to Waiting.
func (g *Game) leaveBeforeStart(seat int) *belotstate.GameError {
	if g.players[seat] == "" {
		return belotstate.New(belotstate.ErrNotMember, "seat is already vacant")
	}
	leaving := g.players[seat]
	g.players[seat] = ""
	g.active[seat] = false
	g.Status = StatusWaiting
	g.appendHistory(fmt.Sprintf("%s left before the game started", leaving))
	return nil
}

// forfeitInProgress marks seat disconnected and, once a player has left an
// in-progress game, ends the game immediately as a forfeit: the leaving
// player's team loses, the other team wins regardless of accumulated score.
func (g *Game) forfeitInProgress(seat int, reason string) ([]OutboundEvent, *belotstate.GameError) {
	if !g.active[seat] {
		return nil, belotstate.New(belotstate.ErrNotMember, "seat already marked departed")
	}
	g.active[seat] = false

	leavingTeam := belotstate.SeatTeam(seat)
	g.Status = StatusCompleted
	g.EndReason = EndReasonPlayerLeft
	g.Winner = leavingTeam.Other()
	g.HasWinner = true
	g.current = nil

	msg := fmt.Sprintf("%s forfeited (left mid-game)", g.players[seat])
	if reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, reason)
	}
	g.appendHistory(msg)
	g.notifyStats()

	return []OutboundEvent{{
		Kind:  "game_completed",
		Topic: g.ID,
		Payload: GameCompletedPayload{Winner: g.Winner, TeamAScore: g.teamAScore, TeamBScore: g.teamBScore},
	}}, nil
}
