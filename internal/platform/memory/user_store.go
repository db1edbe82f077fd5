package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avoronkov/memorizer-api/internal/domain"
	"github.com/avoronkov/memorizer-api/internal/store"
)

// MemoryUserStore implements store.UserStore with locked maps. Like the
// progress store it backs tests and database-less deployments.
type MemoryUserStore struct {
	bcryptCost int

	mu      sync.Mutex
	byID    map[uuid.UUID]domain.User
	byEmail map[string]uuid.UUID
}

// NewMemoryUserStore creates an empty in-memory user store. A
// non-positive bcryptCost falls back to the bcrypt default.
func NewMemoryUserStore(bcryptCost int) *MemoryUserStore {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &MemoryUserStore{
		bcryptCost: bcryptCost,
		byID:       make(map[uuid.UUID]domain.User),
		byEmail:    make(map[string]uuid.UUID),
	}
}

var _ store.UserStore = (*MemoryUserStore)(nil)

// Create implements store.UserStore.Create.
func (s *MemoryUserStore) Create(_ context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if user.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = string(hashed)
		user.Password = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := s.byEmail[email]; exists {
		return store.ErrEmailExists
	}

	s.byID[user.ID] = *user
	s.byEmail[email] = user.ID
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *MemoryUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &user, nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	user := s.byID[id]
	return &user, nil
}
