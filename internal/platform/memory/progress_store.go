// Package memory provides in-memory implementations of the store
// interfaces. They back tests and single-process deployments that run
// without PostgreSQL.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avoronkov/memorizer-api/internal/domain"
	"github.com/avoronkov/memorizer-api/internal/store"
)

// userProgress holds one user's stat maps.
type userProgress struct {
	cards map[int64]domain.CardStat
	verbs map[int64]domain.VerbStat
}

// MemoryProgressStore implements store.ProgressStore with locked maps.
// A single mutex guards all users; each Apply* call is one atomic
// read-modify-write under the lock, which satisfies the per-(user,
// item) atomicity contract.
type MemoryProgressStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*userProgress
}

// NewMemoryProgressStore creates an empty in-memory progress store.
func NewMemoryProgressStore() *MemoryProgressStore {
	return &MemoryProgressStore{
		users: make(map[uuid.UUID]*userProgress),
	}
}

var _ store.ProgressStore = (*MemoryProgressStore)(nil)

// progressFor returns the user's record, creating it lazily. Caller
// must hold mu.
func (s *MemoryProgressStore) progressFor(userID uuid.UUID) *userProgress {
	p, ok := s.users[userID]
	if !ok {
		p = &userProgress{
			cards: make(map[int64]domain.CardStat),
			verbs: make(map[int64]domain.VerbStat),
		}
		s.users[userID] = p
	}
	return p
}

// ApplyWordAnswer implements store.ProgressStore.ApplyWordAnswer.
func (s *MemoryProgressStore) ApplyWordAnswer(
	_ context.Context,
	userID uuid.UUID,
	wordID int64,
	correct bool,
	now time.Time,
) (domain.CardStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.progressFor(userID)
	stat := p.cards[wordID].Apply(correct, now)
	p.cards[wordID] = stat

	return stat, nil
}

// ApplyVerbAttempt implements store.ProgressStore.ApplyVerbAttempt.
func (s *MemoryProgressStore) ApplyVerbAttempt(
	_ context.Context,
	userID uuid.UUID,
	verbID int64,
	allCorrect bool,
	now time.Time,
) (domain.VerbStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.progressFor(userID)
	stat := p.verbs[verbID].Apply(allCorrect, now)
	p.verbs[verbID] = stat

	return stat, nil
}

// CardStats implements store.ProgressStore.CardStats. The returned map
// is a copy.
func (s *MemoryProgressStore) CardStats(
	_ context.Context,
	userID uuid.UUID,
) (map[int64]domain.CardStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := make(map[int64]domain.CardStat)
	if p, ok := s.users[userID]; ok {
		for id, stat := range p.cards {
			stats[id] = stat
		}
	}

	return stats, nil
}

// VerbStats implements store.ProgressStore.VerbStats. The returned map
// is a copy.
func (s *MemoryProgressStore) VerbStats(
	_ context.Context,
	userID uuid.UUID,
) (map[int64]domain.VerbStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := make(map[int64]domain.VerbStat)
	if p, ok := s.users[userID]; ok {
		for id, stat := range p.verbs {
			stats[id] = stat
		}
	}

	return stats, nil
}

// Reset implements store.ProgressStore.Reset.
func (s *MemoryProgressStore) Reset(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, userID)
	return nil
}
