package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/julianpalmerio/minivenmo/internal/models"
	"github.com/julianpalmerio/minivenmo/internal/repository"
)

// Registry state. Guarded by Storage.mu, never touched directly.
type state struct {
	users   map[string]models.User        // by username
	names   map[uuid.UUID]string          // id -> username
	friends map[uuid.UUID][]uuid.UUID     // friendship edges in insertion order
	feeds   map[uuid.UUID][]models.FeedEvent
}

// Storage is the in-memory implementation of repository.Storage.
// A single RWMutex guards the whole registry: payments mutate two users and
// two feeds, so per-user locks would only complicate lock ordering.
type Storage struct {
	mu *sync.RWMutex
	st *state

	// Set on the Storage handed to InTx callbacks. The callback already
	// holds the exclusive lock, so nested operations must not lock again.
	inTx bool
}

func NewStorage() *Storage {
	return &Storage{
		mu: &sync.RWMutex{},
		st: &state{
			users:   make(map[string]models.User),
			names:   make(map[uuid.UUID]string),
			friends: make(map[uuid.UUID][]uuid.UUID),
			feeds:   make(map[uuid.UUID][]models.FeedEvent),
		},
	}
}

func (s *Storage) Users() repository.UserRepo {
	return &UserRepo{s: s}
}

func (s *Storage) Feed() repository.FeedRepo {
	return &FeedRepo{s: s}
}

func (s *Storage) InTx(ctx context.Context, fn func(s repository.Storage) error) error {
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(&Storage{mu: s.mu, st: s.st, inTx: true})
}

// lock acquires the write lock unless already held by an enclosing InTx.
// Usage: defer s.lock()()
func (s *Storage) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Storage) rlock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}
