package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Oganesson0221/debate-ai/internal/api"
	"github.com/Oganesson0221/debate-ai/internal/config"
	"github.com/Oganesson0221/debate-ai/internal/models"
	"github.com/Oganesson0221/debate-ai/internal/repository"
	"github.com/Oganesson0221/debate-ai/internal/service"
	"github.com/Oganesson0221/debate-ai/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.Log.Level)

	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	if err := db.AutoMigrate(
		&models.DebateSession{},
		&models.DebateParticipant{},
		&models.Speech{},
		&models.TranscriptSegment{},
		&models.PointOfInformation{},
		&models.RuleViolation{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto migrate database")
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, logger)

	r := gin.Default()
	api.SetupRoutes(r, services)

	logger.Info().Str("address", cfg.Server.Address).Msg("starting server")
	if err := r.Run(cfg.Server.Address); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}
