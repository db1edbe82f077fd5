package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/avoronkov/memorizer-api/internal/api"
	apiMiddleware "github.com/avoronkov/memorizer-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	trainingHandler := api.NewTrainingHandler(app.trainingService, app.logger)
	catalogHandler := api.NewCatalogHandler(app.catalog, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Training endpoints
			r.Get("/question", trainingHandler.GetQuestion)
			r.Post("/answer", trainingHandler.SubmitAnswer)
			r.Post("/verb/answer", trainingHandler.SubmitVerbAnswer)
			r.Get("/progress", trainingHandler.GetProgress)
			r.Get("/verb/progress", trainingHandler.GetVerbProgress)
			r.Post("/reset", trainingHandler.Reset)

			// Catalog endpoints
			r.Get("/words", catalogHandler.ListWords)
			r.Get("/verb/list", catalogHandler.ListVerbs)
			r.Get("/categories", catalogHandler.ListCategories)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
