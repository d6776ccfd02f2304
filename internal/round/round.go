// Package round implements a single Belot deal as a phase state machine:
// Dealing -> Bidding -> Declaring -> Playing -> Scoring -> Done.
package round

import (
	"math/rand"

	"github.com/bela4us/belotsrv/internal/belotstate"
	"github.com/bela4us/belotsrv/internal/card"
	"github.com/bela4us/belotsrv/internal/rules"
	"github.com/bela4us/belotsrv/internal/scoring"
)

// Phase is one of the six round phases.
type Phase string

const (
	PhaseDealing    Phase = "dealing"
	PhaseBidding    Phase = "bidding"
	PhaseDeclaring  Phase = "declaring"
	PhasePlaying    Phase = "playing"
	PhaseScoring    Phase = "scoring"
	PhaseDone       Phase = "done"
)

// DeclaredMeld records one player's accepted declaration.
type DeclaredMeld struct {
	Seat  int
	Decl  rules.Declaration
}

// CompletedTrickRecord is a resolved trick kept in history.
type CompletedTrickRecord struct {
	Cards  []rules.PlayedCard
	Winner int
}

// Round is one deal: dealing, bidding, declaring, eight tricks of play, and
// scoring. It holds all mutable state for that deal; every mutating method
// validates phase/actor/legality fully before mutating (no partial
// rollback is ever needed).
type Round struct {
	Number int
	Dealer int // seat 0-3

	Phase Phase

	hands [4]card.Hand

	// Bidding
	bidderIdx    int // offset from dealer+1, 0..3, whose turn it is to bid
	passes       int
	trump        card.Suit
	hasTrump     bool
	caller       int // seat
	callingTeam  belotstate.Team

	// Declaring
	declared     []DeclaredMeld
	declareActed [4]bool
	belotSeat    int // seat that announced belot during play, -1 if none
	belotAnnounced bool

	// Playing
	current      rules.Trick
	leader       int // seat leading the current trick
	trickHistory []CompletedTrickRecord

	// Scoring
	result *scoring.RoundResult
}

// New creates a round at PhaseDealing for the given dealer seat.
func New(number, dealer int) *Round {
	return &Round{
		Number:    number,
		Dealer:    dealer,
		Phase:     PhaseDealing,
		belotSeat: -1,
	}
}

// Deal shuffles and deals a fresh deck of 32 cards (via rng) into four
// 8-card hands, and transitions to Bidding. It must be called exactly once,
// immediately after New.
func (r *Round) Deal(rng *rand.Rand) *belotstate.GameError {
	if r.Phase != PhaseDealing {
		return belotstate.New(belotstate.ErrWrongPhase, "round is not in Dealing phase")
	}
	deck := card.NewDeck(rng)
	hands := deck.Deal(4, 8)
	for i := 0; i < 4; i++ {
		r.hands[i] = hands[i]
	}
	r.bidderIdx = 0
	r.Phase = PhaseBidding
	return nil
}

// currentBidder returns the seat whose turn it is to bid: left of dealer,
// proceeding clockwise.
func (r *Round) currentBidder() int {
	return (r.Dealer + 1 + r.bidderIdx) % 4
}

// CurrentActor returns the seat expected to act next, given the phase.
func (r *Round) CurrentActor() int {
	switch r.Phase {
	case PhaseBidding:
		return r.currentBidder()
	case PhaseDeclaring:
		for seat := 0; seat < 4; seat++ {
			actor := (r.Dealer + 1 + seat) % 4
			if !r.declareActed[actor] {
				return actor
			}
		}
		return -1
	case PhasePlaying:
		if r.current.HasLead {
			return r.nextToPlay()
		}
		return r.leader
	default:
		return -1
	}
}

func (r *Round) nextToPlay() int {
	played := make(map[int]bool, len(r.current.Cards))
	for _, pc := range r.current.Cards {
		played[pc.Seat] = true
	}
	for seat := 0; seat < 4; seat++ {
		candidate := (r.leader + seat) % 4
		if !played[candidate] {
			return candidate
		}
	}
	return -1
}

// Hand returns the current cards held by seat.
func (r *Round) Hand(seat int) card.Hand {
	return r.hands[seat]
}

// Trump returns the chosen trump suit and whether one has been chosen yet.
func (r *Round) Trump() (card.Suit, bool) {
	return r.trump, r.hasTrump
}

// Caller returns the seat that chose trump and their team.
func (r *Round) Caller() (int, belotstate.Team) {
	return r.caller, r.callingTeam
}

// CurrentTrick returns the in-progress trick.
func (r *Round) CurrentTrick() rules.Trick {
	return r.current
}

// TrickHistory returns all resolved tricks so far.
func (r *Round) TrickHistory() []CompletedTrickRecord {
	return append([]CompletedTrickRecord(nil), r.trickHistory...)
}

// Declarations returns every accepted declaration this round.
func (r *Round) Declarations() []DeclaredMeld {
	return append([]DeclaredMeld(nil), r.declared...)
}

// IsDone reports whether the round has fully resolved.
func (r *Round) IsDone() bool {
	return r.Phase == PhaseDone
}

// Result returns the computed round result, valid once IsDone is true.
func (r *Round) Result() *scoring.RoundResult {
	return r.result
}
