package game

import (
	"math/rand"
	"testing"
)

func TestDealCoversEverySlot(t *testing.T) {
	deck := NewDeck(DefaultPrompts, rand.New(rand.NewSource(7)))
	prompts := deck.Deal(MaxRounds, MaxPromptsPerRound)
	if len(prompts) != MaxRounds*MaxPromptsPerRound {
		t.Fatalf("expected %d slots, got %d", MaxRounds*MaxPromptsPerRound, len(prompts))
	}
	for round := 1; round <= MaxRounds; round++ {
		for ix := 0; ix < MaxPromptsPerRound; ix++ {
			if prompts[SlotID(round, ix)] == "" {
				t.Fatalf("slot %s has no prompt", SlotID(round, ix))
			}
		}
	}
}

func TestDealIsDeterministicPerSeed(t *testing.T) {
	a := NewDeck(DefaultPrompts, rand.New(rand.NewSource(7))).Deal(MaxRounds, MaxPromptsPerRound)
	b := NewDeck(DefaultPrompts, rand.New(rand.NewSource(7))).Deal(MaxRounds, MaxPromptsPerRound)
	for slot, text := range a {
		if b[slot] != text {
			t.Fatalf("same seed should deal the same prompts, slot %s differs", slot)
		}
	}
}

func TestDealWrapsSmallPool(t *testing.T) {
	pool := []string{"one", "two", "three"}
	deck := NewDeck(pool, rand.New(rand.NewSource(1)))
	prompts := deck.Deal(MaxRounds, MaxPromptsPerRound)
	if len(prompts) != MaxRounds*MaxPromptsPerRound {
		t.Fatalf("expected %d slots even with a small pool, got %d", MaxRounds*MaxPromptsPerRound, len(prompts))
	}
	for slot, text := range prompts {
		if text == "" {
			t.Fatalf("slot %s has no prompt", slot)
		}
	}
}

func TestSlotID(t *testing.T) {
	if SlotID(2, 3) != "2-3" {
		t.Fatalf("expected 2-3, got %s", SlotID(2, 3))
	}
}
