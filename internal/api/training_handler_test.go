package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronkov/memorizer-api/internal/api/shared"
	"github.com/avoronkov/memorizer-api/internal/domain"
	domaintraining "github.com/avoronkov/memorizer-api/internal/domain/training"
	"github.com/avoronkov/memorizer-api/internal/platform/logger"
	"github.com/avoronkov/memorizer-api/internal/service/training"
)

// stubTrainingService implements training.TrainingService with canned
// responses for handler tests.
type stubTrainingService struct {
	question    *domain.Question
	gradeResult *domaintraining.GradeResult
	verbResult  *domaintraining.VerbGradeResult
	progress    *training.ProgressSummary
	verbSummary *training.VerbProgressSummary
	err         error

	lastGenerateReq training.GenerateRequest
	resetCalled     bool
}

func (s *stubTrainingService) GenerateQuestion(
	_ context.Context,
	req training.GenerateRequest,
) (*domain.Question, error) {
	s.lastGenerateReq = req
	return s.question, s.err
}

func (s *stubTrainingService) SubmitAnswer(
	_ context.Context,
	_ uuid.UUID,
	_ training.WordAnswer,
) (*domaintraining.GradeResult, error) {
	return s.gradeResult, s.err
}

func (s *stubTrainingService) SubmitVerbAnswer(
	_ context.Context,
	_ uuid.UUID,
	_ int64,
	_ map[string]string,
) (*domaintraining.VerbGradeResult, error) {
	return s.verbResult, s.err
}

func (s *stubTrainingService) Progress(
	_ context.Context,
	_ uuid.UUID,
	_ []string,
) (*training.ProgressSummary, error) {
	return s.progress, s.err
}

func (s *stubTrainingService) VerbProgress(
	_ context.Context,
	_ uuid.UUID,
) (*training.VerbProgressSummary, error) {
	return s.verbSummary, s.err
}

func (s *stubTrainingService) Reset(_ context.Context, _ uuid.UUID) error {
	s.resetCalled = true
	return s.err
}

var _ training.TrainingService = (*stubTrainingService)(nil)

func newTestHandler(t *testing.T, svc training.TrainingService) *TrainingHandler {
	t.Helper()
	log, err := logger.Setup("error")
	require.NoError(t, err)
	return NewTrainingHandler(svc, log)
}

// authedRequest builds a request carrying an authenticated user ID.
func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, uuid.New())
	return r.WithContext(ctx)
}

func TestGetQuestion(t *testing.T) {
	svc := &stubTrainingService{
		question: &domain.Question{
			ItemID:  1,
			Mode:    domain.ModePTToRUChoice,
			Prompt:  "casa",
			Options: []string{"дом", "окно", "хлеб", "вода"},
		},
	}
	handler := newTestHandler(t, svc)

	w := httptest.NewRecorder()
	handler.GetQuestion(w, authedRequest(http.MethodGet, "/api/question?mode=pt2ru_choice&options=4&categories=home,food", ""))

	require.Equal(t, http.StatusOK, w.Code)

	var q domain.Question
	require.NoError(t, json.NewDecoder(w.Body).Decode(&q))
	assert.Equal(t, int64(1), q.ItemID)
	assert.Len(t, q.Options, 4)

	assert.Equal(t, domain.ModePTToRUChoice, svc.lastGenerateReq.Mode)
	assert.Equal(t, 4, svc.lastGenerateReq.OptionCount)
	assert.Equal(t, []string{"home", "food"}, svc.lastGenerateReq.Categories)
}

func TestGetQuestionRequiresAuth(t *testing.T) {
	handler := newTestHandler(t, &stubTrainingService{})

	w := httptest.NewRecorder()
	handler.GetQuestion(w, httptest.NewRequest(http.MethodGet, "/api/question?mode=pt2ru_choice", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetQuestionBadOptions(t *testing.T) {
	handler := newTestHandler(t, &stubTrainingService{})

	w := httptest.NewRecorder()
	handler.GetQuestion(w, authedRequest(http.MethodGet, "/api/question?mode=pt2ru_choice&options=abc", ""))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetQuestionEmptyPool(t *testing.T) {
	handler := newTestHandler(t, &stubTrainingService{err: domaintraining.ErrEmptyPool})

	w := httptest.NewRecorder()
	handler.GetQuestion(w, authedRequest(http.MethodGet, "/api/question?mode=pt2ru_choice&categories=nope", ""))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "No words match the requested categories", resp.Error)
}

func TestSubmitAnswer(t *testing.T) {
	svc := &stubTrainingService{
		gradeResult: &domaintraining.GradeResult{Correct: true, CorrectAnswer: "дом"},
	}
	handler := newTestHandler(t, svc)

	body := `{"item_id": 1, "mode": "pt2ru_input", "answer": "Дом"}`
	w := httptest.NewRecorder()
	handler.SubmitAnswer(w, authedRequest(http.MethodPost, "/api/answer", body))

	require.Equal(t, http.StatusOK, w.Code)

	var result domaintraining.GradeResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.True(t, result.Correct)
	assert.Equal(t, "дом", result.CorrectAnswer)
}

func TestSubmitAnswerValidation(t *testing.T) {
	handler := newTestHandler(t, &stubTrainingService{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{`},
		{"missing item id", `{"mode": "pt2ru_input", "answer": "дом"}`},
		{"missing mode", `{"item_id": 1, "answer": "дом"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.SubmitAnswer(w, authedRequest(http.MethodPost, "/api/answer", tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSubmitAnswerUnknownWord(t *testing.T) {
	handler := newTestHandler(t, &stubTrainingService{err: domain.ErrWordNotFound})

	body := `{"item_id": 999, "mode": "pt2ru_input", "answer": "дом"}`
	w := httptest.NewRecorder()
	handler.SubmitAnswer(w, authedRequest(http.MethodPost, "/api/answer", body))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitVerbAnswer(t *testing.T) {
	svc := &stubTrainingService{
		verbResult: &domaintraining.VerbGradeResult{
			VerbID:     1,
			Infinitive: "ser",
			AllCorrect: true,
			Results:    map[string]bool{"eu": true, "tu": true, "ele": true, "nos": true, "eles": true},
		},
	}
	handler := newTestHandler(t, svc)

	body := `{"verb_id": 1, "answers": {"eu": "sou", "tu": "és", "ele": "é", "nos": "somos", "eles": "são"}}`
	w := httptest.NewRecorder()
	handler.SubmitVerbAnswer(w, authedRequest(http.MethodPost, "/api/verb/answer", body))

	require.Equal(t, http.StatusOK, w.Code)

	var result domaintraining.VerbGradeResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.True(t, result.AllCorrect)
}

func TestGetProgress(t *testing.T) {
	svc := &stubTrainingService{
		progress: &training.ProgressSummary{
			Total:   5,
			Studied: 2,
			Learned: 1,
			ByCard:  map[int64]domain.CardStat{1: {Seen: 3, Correct: 3, Streak: 3}},
		},
	}
	handler := newTestHandler(t, svc)

	w := httptest.NewRecorder()
	handler.GetProgress(w, authedRequest(http.MethodGet, "/api/progress", ""))

	require.Equal(t, http.StatusOK, w.Code)

	var summary training.ProgressSummary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 1, summary.Learned)
}

func TestResetRequiresConfirmation(t *testing.T) {
	svc := &stubTrainingService{}
	handler := newTestHandler(t, svc)

	w := httptest.NewRecorder()
	handler.Reset(w, authedRequest(http.MethodPost, "/api/reset", `{"confirm": false}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.resetCalled)

	w = httptest.NewRecorder()
	handler.Reset(w, authedRequest(http.MethodPost, "/api/reset", `{"confirm": true}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.resetCalled)
}
