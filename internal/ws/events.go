package ws

import (
	"errors"
	"strings"

	"github.com/picdash/picdash/internal/game"
)

// Server -> client event names. Everything else a client might hear is
// one of these; there is no open-ended message shape.
const (
	EvtGameCreated         = "game-created"
	EvtGameJoined          = "game-joined"
	EvtPlayerJoined        = "player-joined"
	EvtPlayerLeft          = "player-left"
	EvtPlayerStatusUpdated = "player-status-updated"
	EvtAllPlayersReady     = "all-players-ready"
	EvtGameStarted         = "game-started"
	EvtPromptSubmitted     = "prompt-submitted"
	EvtVotingStarted       = "voting-started"
	EvtVoteSubmitted       = "vote-submitted"
	EvtVotingResults       = "voting-results"
	EvtNextPrompt          = "next-prompt"
	EvtRoundEnded          = "round-ended"
	EvtGameEnded           = "game-ended"
	EvtHostChanged         = "host-changed"
	EvtGameReset           = "game-reset"
	EvtError               = "error"
)

var errBadPayload = errors.New("bad payload")

// One payload struct per client event, validated before anything
// reaches the game core. Partial or malformed fields are a protocol
// error, not the state machine's problem.

type CreateGamePayload struct {
	PlayerName string `json:"playerName"`
	MaxPlayers int    `json:"maxPlayers"`
}

func (p *CreateGamePayload) validate() error {
	p.PlayerName = strings.TrimSpace(p.PlayerName)
	if p.PlayerName == "" {
		return errBadPayload
	}
	if p.MaxPlayers == 0 {
		p.MaxPlayers = game.DefaultMaxPlayers
	}
	if p.MaxPlayers < game.MinPlayers {
		return errBadPayload
	}
	return nil
}

type JoinGamePayload struct {
	PlayerName string `json:"playerName"`
	JoinCode   string `json:"joinCode"`
}

func (p *JoinGamePayload) validate() error {
	p.PlayerName = strings.TrimSpace(p.PlayerName)
	p.JoinCode = strings.ToUpper(strings.TrimSpace(p.JoinCode))
	if p.PlayerName == "" || len(p.JoinCode) != game.JoinCodeLength {
		return errBadPayload
	}
	return nil
}

type PlayerReadyPayload struct {
	IsReady bool `json:"isReady"`
}

type SubmitPromptPayload struct {
	PromptText string `json:"promptText"`
	ImageURL   string `json:"imageUrl"`
}

func (p *SubmitPromptPayload) validate() error {
	p.PromptText = strings.TrimSpace(p.PromptText)
	if p.PromptText == "" {
		return errBadPayload
	}
	return nil
}

type SubmitVotePayload struct {
	SubmissionID string `json:"submissionId"`
}

func (p *SubmitVotePayload) validate() error {
	if strings.TrimSpace(p.SubmissionID) == "" {
		return errBadPayload
	}
	return nil
}

// errCode maps core errors to the wire-level error codes clients key
// their messaging on.
func errCode(err error) string {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return "game_not_found"
	case errors.Is(err, game.ErrPlayerNotFound):
		return "player_not_found"
	case errors.Is(err, game.ErrGameFull):
		return "game_full"
	case errors.Is(err, game.ErrGameInProgress):
		return "game_in_progress"
	case errors.Is(err, game.ErrNotHost):
		return "not_host"
	case errors.Is(err, game.ErrInsufficientPlayers):
		return "insufficient_players"
	case errors.Is(err, game.ErrInvalidPhase):
		return "invalid_phase"
	case errors.Is(err, game.ErrDuplicateSubmission):
		return "duplicate_submission"
	case errors.Is(err, game.ErrInvalidVote):
		return "invalid_vote"
	case errors.Is(err, errBadPayload):
		return "bad_payload"
	default:
		return "internal_error"
	}
}
