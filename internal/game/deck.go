package game

import (
	"fmt"
	"math/rand"
)

// DefaultPrompts is the built-in writing prompt pool.
var DefaultPrompts = []string{
	"A superhero with an unusual power",
	"An animal doing a human job",
	"A famous person in a ridiculous situation",
	"The weirdest food combination ever",
	"A day in the life of a household object",
	"If aliens visited a mundane place on Earth",
	"A monster that is afraid of something silly",
	"The world's most impractical vehicle",
	"A pet with a secret double life",
	"The strangest sport never invented",
	"A robot trying to understand human emotions",
	"The most over-the-top wedding ever",
	"A time traveler experiencing modern technology",
	"The world's worst superhero team",
	"An unlikely animal friendship",
	"The most ridiculous fashion trend of the future",
	"A day at the beach gone hilariously wrong",
	"If plants could talk and move",
	"The world's most unusual restaurant",
	"A fairy tale character in the modern world",
}

// Deck deals shuffled prompt texts to (round, promptIndex) slots for one
// session. Randomness is injected so tests can make it deterministic.
type Deck struct {
	pool []string
	rng  *rand.Rand
}

func NewDeck(pool []string, rng *rand.Rand) *Deck {
	return &Deck{pool: pool, rng: rng}
}

// SlotID formats the canonical "{round}-{promptIndex}" slot identifier.
func SlotID(round, promptIndex int) string {
	return fmt.Sprintf("%d-%d", round, promptIndex)
}

// Deal assigns one prompt text per slot, wrapping around the pool if a
// game needs more slots than the pool holds.
func (d *Deck) Deal(rounds, perRound int) map[string]string {
	shuffled := make([]string, len(d.pool))
	copy(shuffled, d.pool)
	d.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	prompts := make(map[string]string, rounds*perRound)
	for round := 1; round <= rounds; round++ {
		for ix := 0; ix < perRound; ix++ {
			n := (round-1)*perRound + ix
			prompts[SlotID(round, ix)] = shuffled[n%len(shuffled)]
		}
	}
	return prompts
}
