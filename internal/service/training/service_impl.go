package training

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avoronkov/memorizer-api/internal/catalog"
	"github.com/avoronkov/memorizer-api/internal/domain"
	domaintraining "github.com/avoronkov/memorizer-api/internal/domain/training"
	"github.com/avoronkov/memorizer-api/internal/store"
)

// trainingService implements TrainingService on top of the immutable
// catalog and a ProgressStore.
type trainingService struct {
	catalog       *catalog.Catalog
	progressStore store.ProgressStore
	logger        *slog.Logger
	timeFunc      func() time.Time

	// rngMu guards rng; math/rand.Rand is not safe for concurrent use.
	rngMu sync.Mutex
	rng   *rand.Rand
}

var _ TrainingService = (*trainingService)(nil)

// NewTrainingService creates a training service. The random source is
// injected so tests can seed deterministically; pass
// rand.New(rand.NewSource(time.Now().UnixNano())) in production wiring.
func NewTrainingService(
	cat *catalog.Catalog,
	progressStore store.ProgressStore,
	rng *rand.Rand,
	logger *slog.Logger,
) (TrainingService, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	if progressStore == nil {
		return nil, fmt.Errorf("progress store cannot be nil")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &trainingService{
		catalog:       cat,
		progressStore: progressStore,
		logger:        logger.With(slog.String("component", "training_service")),
		timeFunc:      time.Now,
		rng:           rng,
	}, nil
}

// GenerateQuestion implements TrainingService.GenerateQuestion.
func (s *trainingService) GenerateQuestion(ctx context.Context, req GenerateRequest) (*domain.Question, error) {
	log := s.logger.With(slog.String("mode", string(req.Mode)))

	if !req.Mode.Valid() {
		return nil, domain.ErrInvalidMode
	}

	if req.Mode == domain.ModeVerbs {
		question, err := s.nextVerbQuestion()
		if err != nil {
			return nil, &ServiceError{Operation: "generate_question", Message: "failed to sample verb", Err: err}
		}
		log.Debug("generated verb question", slog.Int64("verb_id", question.ItemID))
		return question, nil
	}

	pool := s.catalog.Words(req.Categories)
	optionCount := clampOptionCount(req.OptionCount)

	question, err := s.nextWordQuestion(pool, req.Mode, optionCount)
	if err != nil {
		return nil, &ServiceError{Operation: "generate_question", Message: "failed to sample word", Err: err}
	}

	log.Debug("generated word question",
		slog.Int64("word_id", question.ItemID),
		slog.Int("pool_size", len(pool)),
		slog.Int("options", len(question.Options)))
	return question, nil
}

func (s *trainingService) nextWordQuestion(
	pool []domain.Word,
	mode domain.Mode,
	optionCount int,
) (*domain.Question, error) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return domaintraining.NewWordQuestion(s.rng, pool, mode, optionCount)
}

func (s *trainingService) nextVerbQuestion() (*domain.Question, error) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return domaintraining.NewVerbQuestion(s.rng, s.catalog.Verbs())
}

// clampOptionCount coerces the requested option count into the
// supported range. Zero (unset) gets the lower bound raised to the
// conventional four-option default.
func clampOptionCount(n int) int {
	if n == 0 {
		return 4
	}
	if n < domaintraining.MinOptions {
		return domaintraining.MinOptions
	}
	if n > domaintraining.MaxOptions {
		return domaintraining.MaxOptions
	}
	return n
}

// SubmitAnswer implements TrainingService.SubmitAnswer.
func (s *trainingService) SubmitAnswer(
	ctx context.Context,
	userID uuid.UUID,
	answer WordAnswer,
) (*domaintraining.GradeResult, error) {
	log := s.logger.With(
		slog.String("user_id", userID.String()),
		slog.Int64("word_id", answer.ItemID),
		slog.String("mode", string(answer.Mode)))

	word, err := s.catalog.WordByID(answer.ItemID)
	if err != nil {
		return nil, err
	}

	result, err := domaintraining.GradeWord(word, answer.Mode, answer.Answer)
	if err != nil {
		return nil, err
	}

	stat, err := s.progressStore.ApplyWordAnswer(ctx, userID, word.ID, result.Correct, s.timeFunc())
	if err != nil {
		log.Error("failed to record word answer", slog.String("error", err.Error()))
		return nil, &ServiceError{Operation: "submit_answer", Message: "failed to record progress", Err: err}
	}

	log.Debug("graded word answer",
		slog.Bool("correct", result.Correct),
		slog.Int("streak", stat.Streak),
		slog.Bool("learned", stat.Learned()))
	return &result, nil
}

// SubmitVerbAnswer implements TrainingService.SubmitVerbAnswer.
func (s *trainingService) SubmitVerbAnswer(
	ctx context.Context,
	userID uuid.UUID,
	verbID int64,
	answers map[string]string,
) (*domaintraining.VerbGradeResult, error) {
	log := s.logger.With(
		slog.String("user_id", userID.String()),
		slog.Int64("verb_id", verbID))

	verb, err := s.catalog.VerbByID(verbID)
	if err != nil {
		return nil, err
	}

	result := domaintraining.GradeVerb(verb, answers)

	stat, err := s.progressStore.ApplyVerbAttempt(ctx, userID, verb.ID, result.AllCorrect, s.timeFunc())
	if err != nil {
		log.Error("failed to record verb attempt", slog.String("error", err.Error()))
		return nil, &ServiceError{Operation: "submit_verb_answer", Message: "failed to record progress", Err: err}
	}

	log.Debug("graded verb attempt",
		slog.Bool("all_correct", result.AllCorrect),
		slog.Bool("mastered", stat.IsMastered()))
	return &result, nil
}

// Progress implements TrainingService.Progress. The summary covers the
// filtered word set only: stats for words outside the filter are not
// counted, and filtered words never attempted contribute zero-value
// entries.
func (s *trainingService) Progress(
	ctx context.Context,
	userID uuid.UUID,
	categories []string,
) (*ProgressSummary, error) {
	words := s.catalog.Words(categories)

	stats, err := s.progressStore.CardStats(ctx, userID)
	if err != nil {
		return nil, &ServiceError{Operation: "progress", Message: "failed to load word stats", Err: err}
	}

	summary := &ProgressSummary{
		Total:  len(words),
		ByCard: make(map[int64]domain.CardStat, len(words)),
	}

	for _, w := range words {
		stat := stats[w.ID]
		summary.ByCard[w.ID] = stat
		if stat.Seen > 0 {
			summary.Studied++
		}
		if stat.Learned() {
			summary.Learned++
		}
	}

	return summary, nil
}

// VerbProgress implements TrainingService.VerbProgress.
func (s *trainingService) VerbProgress(ctx context.Context, userID uuid.UUID) (*VerbProgressSummary, error) {
	verbs := s.catalog.Verbs()

	stats, err := s.progressStore.VerbStats(ctx, userID)
	if err != nil {
		return nil, &ServiceError{Operation: "verb_progress", Message: "failed to load verb stats", Err: err}
	}

	summary := &VerbProgressSummary{
		Total:  len(verbs),
		ByVerb: make(map[int64]domain.VerbStat, len(verbs)),
	}

	for _, v := range verbs {
		stat := stats[v.ID]
		summary.ByVerb[v.ID] = stat
		if stat.Seen > 0 {
			summary.Seen++
		}
		if stat.IsMastered() {
			summary.Mastered++
		}
	}

	return summary, nil
}

// Reset implements TrainingService.Reset.
func (s *trainingService) Reset(ctx context.Context, userID uuid.UUID) error {
	if err := s.progressStore.Reset(ctx, userID); err != nil {
		s.logger.Error("failed to reset progress",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return &ServiceError{Operation: "reset", Message: "failed to clear progress", Err: err}
	}

	s.logger.Info("progress reset", slog.String("user_id", userID.String()))
	return nil
}
