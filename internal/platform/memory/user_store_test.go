package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronkov/memorizer-api/internal/domain"
	"github.com/avoronkov/memorizer-api/internal/store"
)

func newTestUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("user@example.com", "secure-password-123")
	require.NoError(t, err)
	return user
}

func TestUserCreateAndGet(t *testing.T) {
	s := NewMemoryUserStore(4)
	ctx := context.Background()
	user := newTestUser(t)

	require.NoError(t, s.Create(ctx, user))
	assert.Empty(t, user.Password, "plaintext password must be cleared after hashing")
	assert.NotEmpty(t, user.HashedPassword)

	byID, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	byEmail, err := s.GetByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	s := NewMemoryUserStore(4)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, newTestUser(t)))

	err := s.Create(ctx, newTestUser(t))
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestUserEmailLookupIsCaseInsensitive(t *testing.T) {
	s := NewMemoryUserStore(4)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, newTestUser(t)))

	_, err := s.GetByEmail(ctx, "USER@example.com")
	assert.NoError(t, err)
}

func TestUserNotFound(t *testing.T) {
	s := NewMemoryUserStore(4)
	ctx := context.Background()

	_, err := s.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = s.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
