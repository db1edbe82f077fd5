// Package training provides the training engine service: question
// generation, answer grading with progress updates, and mastery
// aggregation.
package training

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/avoronkov/memorizer-api/internal/domain"
	domaintraining "github.com/avoronkov/memorizer-api/internal/domain/training"
)

// GenerateRequest describes one question request.
type GenerateRequest struct {
	Mode        domain.Mode
	OptionCount int      // choice modes only; clamped to [2, 6] by the caller
	Categories  []string // empty means the whole catalog
}

// WordAnswer is one submitted word translation.
type WordAnswer struct {
	ItemID int64
	Mode   domain.Mode
	Answer string
}

// ProgressSummary aggregates a user's word mastery. Total is the
// (possibly category-filtered) catalog size; Studied counts words with
// at least one graded answer; Learned counts words satisfying the
// mastery predicate. ByCard holds a stat for every word in the counted
// set, zero-valued for words never attempted.
type ProgressSummary struct {
	Total   int                       `json:"total"`
	Studied int                       `json:"studied"`
	Learned int                       `json:"learned"`
	ByCard  map[int64]domain.CardStat `json:"by_card"`
}

// VerbProgressSummary aggregates a user's verb mastery. Seen counts
// verbs attempted at least once; Mastered counts verbs with at least
// one fully-correct attempt.
type VerbProgressSummary struct {
	Total    int                       `json:"total"`
	Seen     int                       `json:"seen"`
	Mastered int                       `json:"mastered"`
	ByVerb   map[int64]domain.VerbStat `json:"by_verb"`
}

// TrainingService is the boundary the HTTP layer calls into. Question
// generation is read-only; grading atomically folds the result into the
// user's progress before returning.
type TrainingService interface {
	// GenerateQuestion produces one question for the given mode and
	// category filter. Returns domain.ErrInvalidMode for unknown modes,
	// training.ErrEmptyPool when the filter matches nothing, and
	// training.ErrInsufficientPool when a choice question cannot offer
	// two distinct options.
	GenerateQuestion(ctx context.Context, req GenerateRequest) (*domain.Question, error)

	// SubmitAnswer grades a word answer, updates the user's stat for
	// the word, and returns the verdict with the canonical answer.
	// Returns domain.ErrWordNotFound for unknown ids and
	// domain.ErrInvalidMode for non-word modes.
	SubmitAnswer(ctx context.Context, userID uuid.UUID, answer WordAnswer) (*domaintraining.GradeResult, error)

	// SubmitVerbAnswer grades a full conjugation attempt, updates the
	// user's stat for the verb, and returns per-pronoun results with
	// the correct forms. Returns domain.ErrVerbNotFound for unknown
	// ids.
	SubmitVerbAnswer(
		ctx context.Context,
		userID uuid.UUID,
		verbID int64,
		answers map[string]string,
	) (*domaintraining.VerbGradeResult, error)

	// Progress returns the user's word mastery summary, restricted to
	// the given categories when non-empty.
	Progress(ctx context.Context, userID uuid.UUID, categories []string) (*ProgressSummary, error)

	// VerbProgress returns the user's verb mastery summary.
	VerbProgress(ctx context.Context, userID uuid.UUID) (*VerbProgressSummary, error)

	// Reset permanently clears all of the user's progress. It is only
	// ever invoked by an explicit, confirmed request at the boundary.
	Reset(ctx context.Context, userID uuid.UUID) error
}

// ServiceError wraps training service failures with the operation that
// produced them, so callers can log consistently while matching the
// underlying sentinel with errors.Is.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
