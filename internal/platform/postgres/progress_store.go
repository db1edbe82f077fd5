package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avoronkov/memorizer-api/internal/domain"
	"github.com/avoronkov/memorizer-api/internal/store"
)

// PostgresProgressStore implements store.ProgressStore backed by the
// card_stats and verb_stats tables.
//
// The Apply* methods use single-statement INSERT ... ON CONFLICT
// upserts, so each graded answer is one atomic read-modify-write at the
// database: concurrent submissions for the same (user, item) serialize
// on the row and can neither double-count nor drop an update.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a PostgreSQL implementation of the
// ProgressStore interface. The caller owns the database handle.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// ApplyWordAnswer implements store.ProgressStore.ApplyWordAnswer.
func (s *PostgresProgressStore) ApplyWordAnswer(
	ctx context.Context,
	userID uuid.UUID,
	wordID int64,
	correct bool,
	now time.Time,
) (domain.CardStat, error) {
	query := `
		INSERT INTO card_stats (user_id, word_id, seen, correct, incorrect, streak, last_seen)
		VALUES ($1, $2, 1,
			CASE WHEN $3 THEN 1 ELSE 0 END,
			CASE WHEN $3 THEN 0 ELSE 1 END,
			CASE WHEN $3 THEN 1 ELSE 0 END,
			$4)
		ON CONFLICT (user_id, word_id) DO UPDATE SET
			seen      = card_stats.seen + 1,
			correct   = card_stats.correct + CASE WHEN $3 THEN 1 ELSE 0 END,
			incorrect = card_stats.incorrect + CASE WHEN $3 THEN 0 ELSE 1 END,
			streak    = CASE WHEN $3 THEN card_stats.streak + 1 ELSE 0 END,
			last_seen = $4
		RETURNING seen, correct, incorrect, streak, last_seen
	`

	var stat domain.CardStat
	err := s.db.QueryRowContext(ctx, query, userID, wordID, correct, now).
		Scan(&stat.Seen, &stat.Correct, &stat.Incorrect, &stat.Streak, &stat.LastSeen)
	if err != nil {
		s.logger.Error("failed to apply word answer",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("word_id", wordID))
		return domain.CardStat{}, MapError(err)
	}

	return stat, nil
}

// ApplyVerbAttempt implements store.ProgressStore.ApplyVerbAttempt.
func (s *PostgresProgressStore) ApplyVerbAttempt(
	ctx context.Context,
	userID uuid.UUID,
	verbID int64,
	allCorrect bool,
	now time.Time,
) (domain.VerbStat, error) {
	query := `
		INSERT INTO verb_stats (user_id, verb_id, seen, mastered, last_seen)
		VALUES ($1, $2, 1, CASE WHEN $3 THEN 1 ELSE 0 END, $4)
		ON CONFLICT (user_id, verb_id) DO UPDATE SET
			seen      = verb_stats.seen + 1,
			mastered  = verb_stats.mastered + CASE WHEN $3 THEN 1 ELSE 0 END,
			last_seen = $4
		RETURNING seen, mastered, last_seen
	`

	var stat domain.VerbStat
	err := s.db.QueryRowContext(ctx, query, userID, verbID, allCorrect, now).
		Scan(&stat.Seen, &stat.Mastered, &stat.LastSeen)
	if err != nil {
		s.logger.Error("failed to apply verb attempt",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("verb_id", verbID))
		return domain.VerbStat{}, MapError(err)
	}

	return stat, nil
}

// CardStats implements store.ProgressStore.CardStats.
func (s *PostgresProgressStore) CardStats(
	ctx context.Context,
	userID uuid.UUID,
) (map[int64]domain.CardStat, error) {
	query := `
		SELECT word_id, seen, correct, incorrect, streak, last_seen
		FROM card_stats
		WHERE user_id = $1
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	stats := make(map[int64]domain.CardStat)
	for rows.Next() {
		var wordID int64
		var stat domain.CardStat
		if err := rows.Scan(&wordID, &stat.Seen, &stat.Correct, &stat.Incorrect, &stat.Streak, &stat.LastSeen); err != nil {
			return nil, MapError(err)
		}
		stats[wordID] = stat
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return stats, nil
}

// VerbStats implements store.ProgressStore.VerbStats.
func (s *PostgresProgressStore) VerbStats(
	ctx context.Context,
	userID uuid.UUID,
) (map[int64]domain.VerbStat, error) {
	query := `
		SELECT verb_id, seen, mastered, last_seen
		FROM verb_stats
		WHERE user_id = $1
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	stats := make(map[int64]domain.VerbStat)
	for rows.Next() {
		var verbID int64
		var stat domain.VerbStat
		if err := rows.Scan(&verbID, &stat.Seen, &stat.Mastered, &stat.LastSeen); err != nil {
			return nil, MapError(err)
		}
		stats[verbID] = stat
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return stats, nil
}

// Reset implements store.ProgressStore.Reset. A single statement with
// a data-modifying CTE clears both stat tables so the reset cannot be
// half-applied. Deleting zero rows is not an error.
func (s *PostgresProgressStore) Reset(ctx context.Context, userID uuid.UUID) error {
	query := `
		WITH cleared_cards AS (
			DELETE FROM card_stats WHERE user_id = $1
		)
		DELETE FROM verb_stats WHERE user_id = $1
	`

	if _, err := s.db.ExecContext(ctx, query, userID); err != nil {
		s.logger.Error("failed to reset progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return MapError(err)
	}

	return nil
}
