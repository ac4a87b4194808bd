package game

import (
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Registry owns every active session. Sessions exist nowhere else; they
// are created here, found here, and dropped here once their last player
// is gone. Randomness is injected so tests can seed it.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session // id -> session
	byCode   map[string]string   // joinCode -> id
	rng      *rand.Rand
}

func NewRegistry(rng *rand.Rand) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		byCode:   make(map[string]string),
		rng:      rng,
	}
}

// Create allocates a session with a fresh join code and seeds the host
// player.
func (r *Registry) Create(hostName, connectionID string, maxPlayers int) (*Session, Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := r.randomCodeLocked()
	for r.byCode[code] != "" {
		code = r.randomCodeLocked()
	}

	// Each session gets its own rand so prompt deals never race with
	// code generation here.
	deck := NewDeck(DefaultPrompts, rand.New(rand.NewSource(r.rng.Int63())))
	s := newSession(uuid.NewString(), code, maxPlayers, deck)
	host, err := s.AddPlayer(hostName, connectionID, true)
	if err != nil {
		return nil, Player{}, err
	}

	r.sessions[s.id] = s
	r.byCode[code] = s.id
	return s, host, nil
}

// Join adds a player to the session with the given code.
func (r *Registry) Join(joinCode, name, connectionID string) (*Session, Player, error) {
	r.mu.RLock()
	s := r.byCodeLocked(joinCode)
	r.mu.RUnlock()
	if s == nil {
		return nil, Player{}, ErrGameNotFound
	}
	p, err := s.AddPlayer(name, connectionID, false)
	if err != nil {
		return nil, Player{}, err
	}
	return s, p, nil
}

func (r *Registry) ByID(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) ByCode(joinCode string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := r.byCodeLocked(joinCode)
	return s, s != nil
}

func (r *Registry) byCodeLocked(joinCode string) *Session {
	id, ok := r.byCode[joinCode]
	if !ok {
		return nil
	}
	return r.sessions[id]
}

// Remove deletes a session and frees its join code. Idempotent.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return
	}
	delete(r.sessions, id)
	delete(r.byCode, s.joinCode)
}

func (r *Registry) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) randomCodeLocked() string {
	b := make([]byte, JoinCodeLength)
	for i := range b {
		b[i] = codeAlphabet[r.rng.Intn(len(codeAlphabet))]
	}
	return string(b)
}
