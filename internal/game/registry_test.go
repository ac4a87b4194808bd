package game

import (
	"math/rand"
	"strings"
	"testing"
)

func TestJoinCodeShapeAndUniqueness(t *testing.T) {
	reg := testRegistry()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		sess, _, err := reg.Create("Host", "conn", DefaultMaxPlayers)
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
		code := sess.JoinCode()
		if len(code) != JoinCodeLength {
			t.Fatalf("expected %d-char code, got %q", JoinCodeLength, code)
		}
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		if seen[code] {
			t.Fatalf("code %q issued twice among active sessions", code)
		}
		seen[code] = true
	}
	if reg.SessionCount() != 200 {
		t.Fatalf("expected 200 active sessions, got %d", reg.SessionCount())
	}
}

func TestJoinCodeReusableAfterRemoval(t *testing.T) {
	// With a tiny rng the generator will collide; retry must still land
	// on a code unused by any active session.
	reg := NewRegistry(rand.New(rand.NewSource(42)))
	first, _, _ := reg.Create("A", "c1", DefaultMaxPlayers)
	reg.Remove(first.ID())
	second, _, err := reg.Create("B", "c2", DefaultMaxPlayers)
	if err != nil {
		t.Fatalf("create after removal failed: %v", err)
	}
	if _, ok := reg.ByCode(second.JoinCode()); !ok {
		t.Fatal("new session should be findable by its code")
	}
	if _, ok := reg.ByCode(first.JoinCode()); ok && first.JoinCode() != second.JoinCode() {
		t.Fatal("removed session's code should not resolve")
	}
}

func TestJoinErrors(t *testing.T) {
	reg := testRegistry()

	if _, _, err := reg.Join("ZZZZZZ", "Nobody", "conn"); err != ErrGameNotFound {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}

	sess, _, _ := reg.Create("Alice", "c1", 2)
	if _, _, err := reg.Join(sess.JoinCode(), "Bob", "c2"); err != nil {
		t.Fatalf("Bob should fit: %v", err)
	}
	if _, _, err := reg.Join(sess.JoinCode(), "Carol", "c3"); err != ErrGameFull {
		t.Fatalf("expected ErrGameFull, got %v", err)
	}

	sess2, host2, _ := reg.Create("Dave", "c4", DefaultMaxPlayers)
	reg.Join(sess2.JoinCode(), "Erin", "c5")
	if _, err := sess2.Start(host2.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, _, err := reg.Join(sess2.JoinCode(), "Frank", "c6"); err != ErrGameInProgress {
		t.Fatalf("expected ErrGameInProgress, got %v", err)
	}
}

func TestLookups(t *testing.T) {
	reg := testRegistry()
	sess, _, _ := reg.Create("Alice", "c1", DefaultMaxPlayers)

	byID, ok := reg.ByID(sess.ID())
	if !ok || byID != sess {
		t.Fatal("ByID should return the created session")
	}
	byCode, ok := reg.ByCode(sess.JoinCode())
	if !ok || byCode != sess {
		t.Fatal("ByCode should return the created session")
	}
	if _, ok := reg.ByID("missing"); ok {
		t.Fatal("unknown id should not resolve")
	}
}
