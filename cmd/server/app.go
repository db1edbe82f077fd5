package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"

	"github.com/avoronkov/memorizer-api/internal/catalog"
	"github.com/avoronkov/memorizer-api/internal/config"
	"github.com/avoronkov/memorizer-api/internal/platform/logger"
	"github.com/avoronkov/memorizer-api/internal/platform/memory"
	"github.com/avoronkov/memorizer-api/internal/platform/postgres"
	"github.com/avoronkov/memorizer-api/internal/service/auth"
	"github.com/avoronkov/memorizer-api/internal/service/training"
	"github.com/avoronkov/memorizer-api/internal/store"
)

// application holds the shared application dependencies so wiring and
// shutdown stay in one place.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when running on the in-memory progress store.
	db *sql.DB

	catalog       *catalog.Catalog
	userStore     store.UserStore
	progressStore store.ProgressStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	trainingService  training.TrainingService
}

// newApplication loads configuration and wires every dependency. With
// database.url set it runs migrations and uses PostgreSQL; otherwise it
// falls back to in-memory progress and user stores, which suits local
// development and tests.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_configured", cfg.Database.URL != "")

	cat, err := catalog.Load(cfg.Catalog.WordsFile, cfg.Catalog.VerbsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Info("catalog loaded",
		"words", len(cat.Words(nil)),
		"verbs", len(cat.Verbs()),
		"categories", len(cat.Categories()))

	app := &application{
		config:  cfg,
		logger:  log,
		catalog: cat,
	}

	if err := app.setupStores(); err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	app.jwtService = jwtService
	app.passwordVerifier = auth.NewBcryptVerifier()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	trainingService, err := training.NewTrainingService(cat, app.progressStore, rng, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create training service: %w", err)
	}
	app.trainingService = trainingService

	return app, nil
}

// setupStores connects the persistence layer: PostgreSQL-backed stores
// when a database URL is configured, in-memory stores otherwise.
func (app *application) setupStores() error {
	if app.config.Database.URL == "" {
		app.logger.Warn("no database configured, using in-memory stores; progress is lost on restart")
		app.userStore = memory.NewMemoryUserStore(bcryptCost(app.config))
		app.progressStore = memory.NewMemoryProgressStore()
		return nil
	}

	db, err := sql.Open("pgx", app.config.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.db = db
	app.userStore = postgres.NewPostgresUserStore(db, bcryptCost(app.config), app.logger)
	app.progressStore = postgres.NewPostgresProgressStore(db, app.logger)
	return nil
}

func bcryptCost(cfg *config.Config) int {
	if cfg.Auth.BcryptCost > 0 {
		return cfg.Auth.BcryptCost
	}
	return bcrypt.DefaultCost
}

// cleanup releases resources on shutdown.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
