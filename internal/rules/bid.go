package rules

// Phase names the round phases relevant to bid legality. The round package
// owns the full phase enum; this mirrors just enough of it to keep rules
// dependency-free of round.
type Phase string

const PhaseBidding Phase = "bidding"

// LegalBid reports whether actor may bid (or pass) given the current phase
// and the designated bidder for this turn.
func LegalBid(phase Phase, actor, expectedActor int) bool {
	return phase == PhaseBidding && actor == expectedActor
}
