package gamesession

import (
	"github.com/bela4us/belotsrv/internal/belotstate"
	"github.com/bela4us/belotsrv/internal/card"
	"github.com/bela4us/belotsrv/internal/rules"
	"github.com/bela4us/belotsrv/internal/scoring"
)

// EventKind is one of the inbound Game event kinds (SPEC_FULL §6).
type EventKind string

const (
	EventBidTrump     EventKind = "bid_trump"
	EventPassTrump    EventKind = "pass_trump"
	EventDeclare      EventKind = "declare"
	EventAnnounceBelot EventKind = "announce_belot"
	EventPlayCard     EventKind = "play_card"
	EventPlayerLeft   EventKind = "player_left"
)

// Event is one inbound event addressed to this Game.
type Event struct {
	Seq      int64
	Actor    string // player id
	Kind     EventKind
	Trump    card.Suit
	Decl     rules.Declaration
	Card     card.Card
	Reason   string
}

// Apply validates and applies event, enforcing idempotency-by-sequence:
// a seq <= the last applied seq is rejected unless it is exactly the last
// applied seq, in which case a result marked Replayed, carrying no
// broadcasts, is returned without mutating state again.
func (g *Game) Apply(ev Event) (*ApplyResult, *belotstate.GameError) {
	if ev.Seq == g.lastAppliedSeq && g.lastResultCached != nil {
		return &ApplyResult{Seq: ev.Seq, Replayed: true, Broadcasts: nil}, nil
	}
	if ev.Seq <= g.lastAppliedSeq {
		return nil, belotstate.New(belotstate.ErrStale, "event sequence already applied")
	}

	seat := g.seatOf(ev.Actor)
	if seat < 0 {
		return nil, belotstate.New(belotstate.ErrNotMember, "actor is not part of this game")
	}

	broadcasts, err := g.dispatch(seat, ev)
	if err != nil {
		return nil, err
	}

	g.lastAppliedSeq = ev.Seq
	result := &ApplyResult{Seq: ev.Seq, Broadcasts: broadcasts}
	g.lastResultCached = result
	return result, nil
}

// dispatch applies one event against the current round and returns the
// outbound events it produces (SPEC_FULL §6), for the caller to forward
// through the Broadcaster.
func (g *Game) dispatch(seat int, ev Event) ([]OutboundEvent, *belotstate.GameError) {
	if ev.Kind == EventPlayerLeft {
		return g.handleLeave(seat, ev.Reason)
	}
	if g.Status != StatusInProgress || g.current == nil {
		return nil, belotstate.New(belotstate.ErrWrongPhase, "game is not in progress")
	}

	switch ev.Kind {
	case EventBidTrump:
		if err := g.current.Bid(seat, ev.Trump); err != nil {
			return nil, err
		}
		return []OutboundEvent{{
			Kind:  "trump_selected",
			Topic: g.ID,
			Payload: TrumpSelectedPayload{Seat: seat, Suit: ev.Trump},
		}}, nil

	case EventPassTrump:
		if err := g.current.Pass(seat); err != nil {
			return nil, err
		}
		return nil, nil

	case EventDeclare:
		if err := g.current.Declare(seat, ev.Decl); err != nil {
			return nil, err
		}
		return []OutboundEvent{{
			Kind:  "declarations_announced",
			Topic: g.ID,
			Payload: DeclarationsAnnouncedPayload{Seat: seat, Declaration: ev.Decl},
		}}, nil

	case EventAnnounceBelot:
		if err := g.current.AnnounceBelot(seat); err != nil {
			return nil, err
		}
		return nil, nil

	case EventPlayCard:
		tricksBefore := len(g.current.TrickHistory())
		if err := g.current.PlayCard(seat, ev.Card); err != nil {
			return nil, err
		}
		events := []OutboundEvent{{
			Kind:  "card_played",
			Topic: g.ID,
			Payload: CardPlayedPayload{Seat: seat, Card: ev.Card},
		}}

		if tricks := g.current.TrickHistory(); len(tricks) > tricksBefore {
			last := tricks[len(tricks)-1]
			cards := make([]card.Card, 0, len(last.Cards))
			for _, pc := range last.Cards {
				cards = append(cards, pc.Card)
			}
			trump, _ := g.current.Trump()
			points := scoring.TrickPoints(cards, trump, len(tricks) == 8)
			events = append(events, OutboundEvent{
				Kind:  "trick_completed",
				Topic: g.ID,
				Payload: TrickCompletedPayload{Winner: last.Winner, Points: points},
			})
		}

		if g.current.IsDone() {
			roundEvents, err := g.advanceRound()
			if err != nil {
				return nil, err
			}
			events = append(events, roundEvents...)
		}
		return events, nil

	default:
		return nil, belotstate.New(belotstate.ErrIllegalMove, "unknown event kind")
	}
}
