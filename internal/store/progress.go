package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avoronkov/memorizer-api/internal/domain"
)

// ProgressStore is the per-user mastery statistics persistence
// contract. Stat records are created lazily: reading a (user, item)
// pair that was never written yields the zero-value stat, and the
// Apply* methods upsert.
//
// Apply* updates MUST be atomic per (user, item): two near-simultaneous
// submissions for the same item by the same user must each observe the
// other's increment, never a stale streak. The postgres implementation
// achieves this with single-statement upserts; the in-memory one with a
// per-store lock. Operations on different items or users are
// independent and may run in parallel.
type ProgressStore interface {
	// ApplyWordAnswer folds one graded word answer into the user's stat
	// for the word and returns the updated stat.
	ApplyWordAnswer(
		ctx context.Context,
		userID uuid.UUID,
		wordID int64,
		correct bool,
		now time.Time,
	) (domain.CardStat, error)

	// ApplyVerbAttempt folds one graded conjugation attempt into the
	// user's stat for the verb and returns the updated stat.
	ApplyVerbAttempt(
		ctx context.Context,
		userID uuid.UUID,
		verbID int64,
		allCorrect bool,
		now time.Time,
	) (domain.VerbStat, error)

	// CardStats returns every word stat recorded for the user, keyed by
	// word id. Words never attempted are absent from the map.
	CardStats(ctx context.Context, userID uuid.UUID) (map[int64]domain.CardStat, error)

	// VerbStats returns every verb stat recorded for the user, keyed by
	// verb id. Verbs never attempted are absent from the map.
	VerbStats(ctx context.Context, userID uuid.UUID) (map[int64]domain.VerbStat, error)

	// Reset permanently deletes all of the user's word and verb stats.
	Reset(ctx context.Context, userID uuid.UUID) error
}
