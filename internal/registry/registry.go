package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/ygame-backend/internal/apperror"
	"github.com/rocketscienceinc/ygame-backend/internal/entity"
)

var ErrMatchExists = errors.New("match already registered")

type session struct {
	mu    sync.Mutex
	match *entity.Match
}

// Registry holds the live matches. Every access to a match runs under that match's own lock.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func New() *Registry {
	return &Registry{
		sessions: make(map[string]*session),
	}
}

// Insert - registers a new match. An id is registered at most once.
func (that *Registry) Insert(m *entity.Match) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[m.ID]; ok {
		return fmt.Errorf("%w: %s", ErrMatchExists, m.ID)
	}

	that.sessions[m.ID] = &session{match: m}

	return nil
}

// With - runs fn holding the match lock. Calls for the same id are serialized.
func (that *Registry) With(id string, fn func(m *entity.Match) error) error {
	that.mu.RLock()
	s, ok := that.sessions[id]
	that.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrMatchNotFound, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.match)
}

func (that *Registry) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}
