package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/avoronkov/memorizer-api/internal/domain"
)

// UserStore is the user account persistence contract.
type UserStore interface {
	// Create validates and saves a new user, hashing the plaintext
	// password. Returns ErrEmailExists if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if the
	// user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if
	// the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
