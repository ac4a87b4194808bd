package game

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Session is the authoritative state machine for one game. Every
// mutating operation takes the session mutex for its full duration, so
// events on the same session are applied one at a time in arrival order.
// Different sessions are fully independent.
type Session struct {
	id       string
	joinCode string

	mu          sync.Mutex
	status      Status
	hostID      string
	round       int
	promptIndex int
	maxPlayers  int
	players     map[string]*Player
	prompts     map[string]string            // slotID -> prompt text
	submissions map[string]*Submission       // submissionID -> Submission
	votes       map[string]map[string]string // slotID -> voterID -> submissionID
	results     map[string]RoundResult       // slotID -> result, written once
	deck        *Deck
	nextSeq     int
}

type Snapshot struct {
	ID                 string   `json:"id"`
	JoinCode           string   `json:"joinCode"`
	Status             Status   `json:"status"`
	HostID             string   `json:"hostId"`
	CurrentRound       int      `json:"currentRound"`
	CurrentPromptIndex int      `json:"currentPromptIndex"`
	MaxPlayers         int      `json:"maxPlayers"`
	MaxRounds          int      `json:"maxRounds"`
	MaxPromptsPerRound int      `json:"maxPromptsPerRound"`
	Players            []Player `json:"players"`
}

// SubmitOutcome reports what a submission changed beyond being stored.
type SubmitOutcome struct {
	SubmissionID string
	SlotID       string
	VotingOpened bool
	Submissions  []Submission // the slot's submissions, set when voting opened
}

// VoteOutcome reports what recording a vote triggered. A closed slot
// carries the result plus whichever progression applies: the next
// prompt, a round boundary, or the end of the game.
type VoteOutcome struct {
	SlotID     string
	SlotClosed bool
	Result     *RoundResult
	NextPrompt *Prompt
	RoundEnded bool
	GameEnded  bool
	Players    []Player // scoreboard, set when the slot closed
}

// RemoveOutcome reports the consequences of a player leaving. Removing
// a player can hand off the host role, empty the session, or satisfy
// the current slot's closure condition for the remaining players.
type RemoveOutcome struct {
	Removed   Player
	Empty     bool
	NewHostID string
	Submit    *SubmitOutcome // set if the removal opened voting
	Vote      *VoteOutcome   // set if the removal closed the slot
}

func newSession(id, joinCode string, maxPlayers int, deck *Deck) *Session {
	return &Session{
		id:          id,
		joinCode:    joinCode,
		status:      StatusWaiting,
		round:       1,
		promptIndex: 0,
		maxPlayers:  maxPlayers,
		players:     make(map[string]*Player),
		prompts:     deck.Deal(MaxRounds, MaxPromptsPerRound),
		submissions: make(map[string]*Submission),
		votes:       make(map[string]map[string]string),
		results:     make(map[string]RoundResult),
		deck:        deck,
	}
}

func (s *Session) ID() string       { return s.id }
func (s *Session) JoinCode() string { return s.joinCode }

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:                 s.id,
		JoinCode:           s.joinCode,
		Status:             s.status,
		HostID:             s.hostID,
		CurrentRound:       s.round,
		CurrentPromptIndex: s.promptIndex,
		MaxPlayers:         s.maxPlayers,
		MaxRounds:          MaxRounds,
		MaxPromptsPerRound: MaxPromptsPerRound,
		Players:            s.playersLocked(),
	}
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) Players() []Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playersLocked()
}

// playersLocked returns player copies in join order.
func (s *Session) playersLocked() []Player {
	out := make([]Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

func (s *Session) HostID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hostID
}

func (s *Session) currentPromptLocked() Prompt {
	slot := SlotID(s.round, s.promptIndex)
	return Prompt{SlotID: slot, Text: s.prompts[slot], Round: s.round, PromptIndex: s.promptIndex}
}

// AddPlayer joins a player, or seeds the host when the session is empty.
func (s *Session) AddPlayer(name, connectionID string, isHost bool) (Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !isHost {
		if s.status != StatusWaiting {
			return Player{}, ErrGameInProgress
		}
		if len(s.players) >= s.maxPlayers {
			return Player{}, ErrGameFull
		}
	}
	p := &Player{
		ID:           uuid.NewString(),
		ConnectionID: connectionID,
		Name:         name,
		IsHost:       isHost,
		seq:          s.nextSeq,
	}
	s.nextSeq++
	s.players[p.ID] = p
	if isHost {
		s.hostID = p.ID
	}
	return *p, nil
}

// SetReady updates a player's readiness. It reports whether everyone is
// now ready with enough players to start, purely as an advisory signal;
// the host still has to start the game explicitly.
func (s *Session) SetReady(playerID string, ready bool) (allReady bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.players[playerID]
	if p == nil {
		return false, ErrPlayerNotFound
	}
	p.IsReady = ready
	if len(s.players) < MinPlayers {
		return false, nil
	}
	for _, p := range s.players {
		if !p.IsReady {
			return false, nil
		}
	}
	return true, nil
}

func (s *Session) Start(requesterID string) (Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusWaiting {
		return Prompt{}, ErrInvalidPhase
	}
	if requesterID != s.hostID {
		return Prompt{}, ErrNotHost
	}
	if len(s.players) < MinPlayers {
		return Prompt{}, ErrInsufficientPlayers
	}
	s.status = StatusInProgress
	s.round = 1
	s.promptIndex = 0
	return s.currentPromptLocked(), nil
}

// Submit records a player's authored prompt text plus the generated
// artifact reference for the current slot. Voting opens once every
// current player has submitted.
func (s *Session) Submit(playerID, promptText, artifactURL string) (SubmitOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusInProgress {
		return SubmitOutcome{}, ErrInvalidPhase
	}
	if s.players[playerID] == nil {
		return SubmitOutcome{}, ErrPlayerNotFound
	}
	slot := SlotID(s.round, s.promptIndex)
	for _, sub := range s.submissions {
		if sub.SlotID == slot && sub.PlayerID == playerID {
			return SubmitOutcome{}, ErrDuplicateSubmission
		}
	}
	sub := &Submission{
		ID:          uuid.NewString(),
		PlayerID:    playerID,
		SlotID:      slot,
		PromptText:  promptText,
		ArtifactURL: artifactURL,
		Round:       s.round,
		PromptIndex: s.promptIndex,
		seq:         s.nextSeq,
	}
	s.nextSeq++
	s.submissions[sub.ID] = sub

	out := SubmitOutcome{SubmissionID: sub.ID, SlotID: slot}
	s.maybeOpenVotingLocked(&out)
	return out, nil
}

// maybeOpenVotingLocked moves to voting once all current players have a
// submission for the current slot.
func (s *Session) maybeOpenVotingLocked(out *SubmitOutcome) {
	if s.status != StatusInProgress {
		return
	}
	slot := SlotID(s.round, s.promptIndex)
	subs := s.slotSubmissionsLocked(slot)
	byPlayer := make(map[string]bool, len(subs))
	for _, sub := range subs {
		byPlayer[sub.PlayerID] = true
	}
	for id := range s.players {
		if !byPlayer[id] {
			return
		}
	}
	s.status = StatusVoting
	out.VotingOpened = true
	out.SlotID = slot
	out.Submissions = subs
}

// slotSubmissionsLocked returns submission copies in creation order.
func (s *Session) slotSubmissionsLocked(slot string) []Submission {
	out := make([]Submission, 0, len(s.players))
	for _, sub := range s.submissions {
		if sub.SlotID == slot {
			out = append(out, *sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// Vote records one player's vote for the current slot. Self-votes,
// duplicate votes and votes for submissions outside the slot are
// rejected without touching state. The slot closes once every current
// player has voted.
func (s *Session) Vote(voterID, submissionID string) (VoteOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusVoting {
		return VoteOutcome{}, ErrInvalidPhase
	}
	if s.players[voterID] == nil {
		return VoteOutcome{}, ErrPlayerNotFound
	}
	slot := SlotID(s.round, s.promptIndex)
	sub := s.submissions[submissionID]
	if sub == nil || sub.SlotID != slot {
		return VoteOutcome{}, ErrInvalidVote
	}
	if sub.PlayerID == voterID {
		return VoteOutcome{}, ErrInvalidVote
	}
	if s.votes[slot] == nil {
		s.votes[slot] = make(map[string]string)
	}
	if _, voted := s.votes[slot][voterID]; voted {
		return VoteOutcome{}, ErrInvalidVote
	}
	s.votes[slot][voterID] = submissionID

	out := VoteOutcome{SlotID: slot}
	s.maybeCloseSlotLocked(&out)
	return out, nil
}

// maybeCloseSlotLocked closes the current slot once every current
// player has voted: it tallies, records the result exactly once,
// credits the winner and advances the prompt pointer.
func (s *Session) maybeCloseSlotLocked(out *VoteOutcome) {
	if s.status != StatusVoting {
		return
	}
	slot := SlotID(s.round, s.promptIndex)
	if _, done := s.results[slot]; done {
		return
	}
	votes := s.votes[slot]
	for id := range s.players {
		if _, voted := votes[id]; !voted {
			return
		}
	}

	result := Tally(slot, s.slotSubmissionsLocked(slot), votes)
	s.results[slot] = result

	if result.WinningSubmissionID != "" {
		if winner := s.submissions[result.WinningSubmissionID]; winner != nil {
			if p := s.players[winner.PlayerID]; p != nil {
				p.Score += result.PointsAwarded
			}
		}
	}

	out.SlotClosed = true
	out.Result = &result
	s.advancePointerLocked(out)
	out.Players = s.playersLocked()
}

func (s *Session) advancePointerLocked(out *VoteOutcome) {
	s.promptIndex++
	if s.promptIndex < MaxPromptsPerRound {
		s.status = StatusInProgress
		next := s.currentPromptLocked()
		out.NextPrompt = &next
		return
	}
	s.promptIndex = 0
	s.round++
	if s.round > MaxRounds {
		s.status = StatusCompleted
		out.GameEnded = true
		return
	}
	// Round boundaries are a notification, not a pause: the scoreboard
	// goes out and the next prompt follows immediately.
	s.status = StatusRoundComplete
	out.RoundEnded = true
	s.status = StatusInProgress
	next := s.currentPromptLocked()
	out.NextPrompt = &next
}

// RemovePlayer handles voluntary leaves and abrupt disconnects alike.
// The oldest remaining member inherits the host role; an emptied
// session is reported so the registry can drop it. The current slot's
// closure condition is re-checked against the reduced player set so a
// leaver cannot stall the game.
func (s *Session) RemovePlayer(playerID string) (RemoveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.players[playerID]
	if p == nil {
		return RemoveOutcome{}, ErrPlayerNotFound
	}
	delete(s.players, playerID)

	out := RemoveOutcome{Removed: *p}
	if len(s.players) == 0 {
		out.Empty = true
		return out, nil
	}

	if p.IsHost {
		var oldest *Player
		for _, q := range s.players {
			if oldest == nil || q.seq < oldest.seq {
				oldest = q
			}
		}
		oldest.IsHost = true
		s.hostID = oldest.ID
		out.NewHostID = oldest.ID
	}

	switch s.status {
	case StatusInProgress:
		var sub SubmitOutcome
		s.maybeOpenVotingLocked(&sub)
		if sub.VotingOpened {
			out.Submit = &sub
		}
	case StatusVoting:
		var vote VoteOutcome
		vote.SlotID = SlotID(s.round, s.promptIndex)
		s.maybeCloseSlotLocked(&vote)
		if vote.SlotClosed {
			out.Vote = &vote
		}
	}
	return out, nil
}

// Reset starts the same lobby over: fresh prompts, cleared progress and
// scores, same players. Host only.
func (s *Session) Reset(requesterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if requesterID != s.hostID {
		return ErrNotHost
	}
	s.status = StatusWaiting
	s.round = 1
	s.promptIndex = 0
	s.prompts = s.deck.Deal(MaxRounds, MaxPromptsPerRound)
	s.submissions = make(map[string]*Submission)
	s.votes = make(map[string]map[string]string)
	s.results = make(map[string]RoundResult)
	for _, p := range s.players {
		p.IsReady = false
		p.Score = 0
	}
	return nil
}

// Result returns the recorded result for a slot, if the slot closed.
func (s *Session) Result(slot string) (RoundResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.results[slot]
	return r, ok
}
