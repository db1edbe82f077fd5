// Package api provides the HTTP handlers for the trainer.
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/avoronkov/memorizer-api/internal/api/shared"
	"github.com/avoronkov/memorizer-api/internal/domain"
	"github.com/avoronkov/memorizer-api/internal/platform/logger"
	"github.com/avoronkov/memorizer-api/internal/service/training"
)

// TrainingHandler handles question, answer, progress, and reset
// requests for the authenticated user.
type TrainingHandler struct {
	trainingService training.TrainingService
	logger          *slog.Logger
}

// NewTrainingHandler creates a TrainingHandler.
func NewTrainingHandler(
	trainingService training.TrainingService,
	log *slog.Logger,
) *TrainingHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TrainingHandler")
	}

	return &TrainingHandler{
		trainingService: trainingService,
		logger:          log.With(slog.String("component", "training_handler")),
	}
}

// WordAnswerRequest is the body of POST /answer.
type WordAnswerRequest struct {
	ItemID int64  `json:"item_id" validate:"required,min=1"`
	Mode   string `json:"mode"    validate:"required"`
	Answer string `json:"answer"`
}

// VerbAnswerRequest is the body of POST /verb/answer. Answers is keyed
// by pronoun; missing pronouns grade as incorrect.
type VerbAnswerRequest struct {
	VerbID  int64             `json:"verb_id" validate:"required,min=1"`
	Answers map[string]string `json:"answers" validate:"required"`
}

// ResetRequest is the body of POST /reset. The explicit confirm flag
// keeps a stray request from wiping progress.
type ResetRequest struct {
	Confirm bool `json:"confirm" validate:"required"`
}

// GetQuestion handles GET /question. Query parameters: mode (required),
// options (option count for choice modes), categories (comma-separated
// filter).
func (h *TrainingHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if _, ok := getUserIDFromContext(r); !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	mode := domain.Mode(r.URL.Query().Get("mode"))

	optionCount := 0
	if raw := r.URL.Query().Get("options"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid options parameter")
			return
		}
		optionCount = n
	}

	question, err := h.trainingService.GenerateQuestion(r.Context(), training.GenerateRequest{
		Mode:        mode,
		OptionCount: optionCount,
		Categories:  parseCategories(r.URL.Query().Get("categories")),
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, question)
}

// SubmitAnswer handles POST /answer.
func (h *TrainingHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req WordAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.trainingService.SubmitAnswer(r.Context(), userID, training.WordAnswer{
		ItemID: req.ItemID,
		Mode:   domain.Mode(req.Mode),
		Answer: req.Answer,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// SubmitVerbAnswer handles POST /verb/answer.
func (h *TrainingHandler) SubmitVerbAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req VerbAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.trainingService.SubmitVerbAnswer(r.Context(), userID, req.VerbID, req.Answers)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetProgress handles GET /progress. The categories query parameter
// restricts the summary the same way it restricts generation.
func (h *TrainingHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	summary, err := h.trainingService.Progress(r.Context(), userID, parseCategories(r.URL.Query().Get("categories")))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// GetVerbProgress handles GET /verb/progress.
func (h *TrainingHandler) GetVerbProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	summary, err := h.trainingService.VerbProgress(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// Reset handles POST /reset.
func (h *TrainingHandler) Reset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req ResetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if !req.Confirm {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Reset requires confirmation")
		return
	}

	if err := h.trainingService.Reset(r.Context(), userID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "reset"})
}

// parseCategories splits a comma-separated category filter, dropping
// empty entries so "?categories=" means no filter.
func parseCategories(raw string) []string {
	if raw == "" {
		return nil
	}
	var categories []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}
	return categories
}
