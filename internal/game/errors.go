package game

import "errors"

var (
	ErrGameNotFound        = errors.New("game not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrGameFull            = errors.New("game is full")
	ErrGameInProgress      = errors.New("game already in progress")
	ErrNotHost             = errors.New("only the host can do that")
	ErrInsufficientPlayers = errors.New("need at least 2 players")
	ErrInvalidPhase        = errors.New("invalid phase for action")
	ErrDuplicateSubmission = errors.New("already submitted for this prompt")
	ErrInvalidVote         = errors.New("invalid vote")
)
