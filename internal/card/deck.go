package card

import "math/rand"

// Deck is the 32-card Belot deck. Cards are drawn from the end, matching
// the teacher's pkg/poker/deck.go Draw semantics.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck builds a fresh, shuffled 32-card deck using rng. Callers that need
// determinism (tests, replay) should pass rand.New(rand.NewSource(seed));
// callers that don't care may pass a process-seeded source. The deck never
// seeds its own source, per the "deck randomness always goes through an
// injected RNG" design note.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 32),
		rng:   rng,
	}
	for _, s := range AllSuits() {
		for _, r := range AllRanks() {
			d.cards = append(d.cards, New(s, r))
		}
	}
	d.Shuffle()
	return d
}

// Shuffle re-shuffles the deck's remaining cards in place.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Size returns the number of cards remaining in the deck.
func (d *Deck) Size() int {
	return len(d.cards)
}

// Draw removes and returns the top card, or false if the deck is empty.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, true
}

// Deal draws hands hands of perHand cards each, in round-robin order
// matching a real deal (one card to each player in turn). If the deck runs
// out it stops and returns the hands dealt so far, without an error;
// callers are expected to deal exactly once from a fresh 32-card deck for 4x8.
func (d *Deck) Deal(hands, perHand int) [][]Card {
	result := make([][]Card, hands)
	for i := range result {
		result[i] = make([]Card, 0, perHand)
	}
	for round := 0; round < perHand; round++ {
		for h := 0; h < hands; h++ {
			c, ok := d.Draw()
			if !ok {
				return result
			}
			result[h] = append(result[h], c)
		}
	}
	return result
}
