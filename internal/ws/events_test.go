package ws

import (
	"testing"

	"github.com/picdash/picdash/internal/game"
)

func TestCreateGamePayloadValidation(t *testing.T) {
	p := CreateGamePayload{PlayerName: "  Alice  "}
	if err := p.validate(); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
	if p.PlayerName != "Alice" {
		t.Fatalf("name should be trimmed, got %q", p.PlayerName)
	}
	if p.MaxPlayers != game.DefaultMaxPlayers {
		t.Fatalf("zero maxPlayers should default to %d, got %d", game.DefaultMaxPlayers, p.MaxPlayers)
	}

	p = CreateGamePayload{PlayerName: "   "}
	if err := p.validate(); err == nil {
		t.Fatal("blank name should be rejected")
	}
	p = CreateGamePayload{PlayerName: "Alice", MaxPlayers: 1}
	if err := p.validate(); err == nil {
		t.Fatal("maxPlayers below the minimum should be rejected")
	}
}

func TestJoinGamePayloadValidation(t *testing.T) {
	p := JoinGamePayload{PlayerName: "Bob", JoinCode: " abc234 "}
	if err := p.validate(); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
	if p.JoinCode != "ABC234" {
		t.Fatalf("code should be trimmed and upper-cased, got %q", p.JoinCode)
	}

	p = JoinGamePayload{PlayerName: "Bob", JoinCode: "SHORT"}
	if err := p.validate(); err == nil {
		t.Fatal("wrong-length code should be rejected")
	}
	p = JoinGamePayload{PlayerName: "", JoinCode: "ABC234"}
	if err := p.validate(); err == nil {
		t.Fatal("blank name should be rejected")
	}
}

func TestSubmitPayloadValidation(t *testing.T) {
	p := SubmitPromptPayload{PromptText: "  a dog in a suit "}
	if err := p.validate(); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
	if p.PromptText != "a dog in a suit" {
		t.Fatalf("prompt should be trimmed, got %q", p.PromptText)
	}
	p = SubmitPromptPayload{}
	if err := p.validate(); err == nil {
		t.Fatal("empty prompt should be rejected")
	}

	v := SubmitVotePayload{}
	if err := v.validate(); err == nil {
		t.Fatal("empty submission id should be rejected")
	}
}

func TestErrCodeMapping(t *testing.T) {
	cases := map[error]string{
		game.ErrGameNotFound:        "game_not_found",
		game.ErrPlayerNotFound:      "player_not_found",
		game.ErrGameFull:            "game_full",
		game.ErrGameInProgress:      "game_in_progress",
		game.ErrNotHost:             "not_host",
		game.ErrInsufficientPlayers: "insufficient_players",
		game.ErrInvalidPhase:        "invalid_phase",
		game.ErrDuplicateSubmission: "duplicate_submission",
		game.ErrInvalidVote:         "invalid_vote",
		errBadPayload:               "bad_payload",
	}
	for err, want := range cases {
		if got := errCode(err); got != want {
			t.Fatalf("expected %q for %v, got %q", want, err, got)
		}
	}
}
