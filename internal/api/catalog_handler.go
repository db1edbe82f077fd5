package api

import (
	"log/slog"
	"net/http"

	"github.com/samber/lo"

	"github.com/avoronkov/memorizer-api/internal/api/shared"
	"github.com/avoronkov/memorizer-api/internal/catalog"
	"github.com/avoronkov/memorizer-api/internal/domain"
)

// CatalogHandler serves the static reference data: the word list, the
// verb list, and the available categories.
type CatalogHandler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(cat *catalog.Catalog, log *slog.Logger) *CatalogHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CatalogHandler")
	}

	return &CatalogHandler{
		catalog: cat,
		logger:  log.With(slog.String("component", "catalog_handler")),
	}
}

// ListWords handles GET /words, optionally filtered by the
// comma-separated categories query parameter.
func (h *CatalogHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	words := h.catalog.Words(parseCategories(r.URL.Query().Get("categories")))
	shared.RespondWithJSON(w, r, http.StatusOK, words)
}

// VerbSummary is one entry of the verb list: the conjugated forms are
// withheld so the list cannot be used as an answer key.
type VerbSummary struct {
	ID         int64  `json:"id"`
	Infinitive string `json:"infinitive"`
}

// ListVerbs handles GET /verb/list.
func (h *CatalogHandler) ListVerbs(w http.ResponseWriter, r *http.Request) {
	verbs := lo.Map(h.catalog.Verbs(), func(v domain.Verb, _ int) VerbSummary {
		return VerbSummary{ID: v.ID, Infinitive: v.Infinitive}
	})
	shared.RespondWithJSON(w, r, http.StatusOK, verbs)
}

// ListCategories handles GET /categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.catalog.Categories())
}
