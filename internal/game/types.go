package game

type Status string

const (
	StatusWaiting       Status = "waiting"
	StatusInProgress    Status = "playing"
	StatusVoting        Status = "voting"
	StatusRoundComplete Status = "round_complete"
	StatusCompleted     Status = "completed"
)

const (
	MaxRounds          = 3
	MaxPromptsPerRound = 4
	DefaultMaxPlayers  = 8
	MinPlayers         = 2

	PointsPerVote  = 100
	UnanimousBonus = 1000

	JoinCodeLength = 6
)

type Player struct {
	ID           string `json:"id"`
	ConnectionID string `json:"-"`
	Name         string `json:"name"`
	IsHost       bool   `json:"isHost"`
	IsReady      bool   `json:"isReady"`
	Score        int    `json:"score"`

	seq int // join order, used for host succession
}

type Prompt struct {
	SlotID      string `json:"id"`
	Text        string `json:"text"`
	Round       int    `json:"round"`
	PromptIndex int    `json:"promptIndex"`
}

type Submission struct {
	ID          string `json:"id"`
	PlayerID    string `json:"playerId"`
	SlotID      string `json:"promptSlotId"`
	PromptText  string `json:"promptText"`
	ArtifactURL string `json:"artifactUrl"`
	Round       int    `json:"round"`
	PromptIndex int    `json:"promptIndex"`

	seq int // creation order, used as the deterministic tie-break in tallies
}

type RoundResult struct {
	SlotID              string         `json:"promptSlotId"`
	WinningSubmissionID string         `json:"winningSubmissionId"`
	IsUnanimous         bool           `json:"isUnanimous"`
	PointsAwarded       int            `json:"pointsAwarded"`
	VoteCounts          map[string]int `json:"votes"`
}
