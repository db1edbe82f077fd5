// Package auth provides the identity collaborator for the trainer:
// JWT issuance/validation and password verification. The training
// engine itself only ever sees the resolved user ID.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Claims carries the validated identity extracted from a token.
type Claims struct {
	// UserID is the user the token was issued for.
	UserID uuid.UUID

	// TokenType is "access" or "refresh"; it prevents a refresh token
	// from being replayed as an access token.
	TokenType string
}

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the user.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken validates an access token and extracts its claims.
	// Returns ErrExpiredToken, ErrInvalidToken, or ErrWrongTokenType on
	// failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed refresh token for the user.
	// Refresh tokens live longer and are exchanged for new access
	// tokens.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateRefreshToken validates a refresh token and extracts its
	// claims.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}
