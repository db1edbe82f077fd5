package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/avoronkov/memorizer-api/internal/api/shared"
)

// getUserIDFromContext extracts the authenticated user's UUID placed in
// the context by the auth middleware. Returns false if it is missing or
// the nil UUID.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
