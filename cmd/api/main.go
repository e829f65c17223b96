// ShiftCoach API
//
// Wellness scoring and coaching backend for shift workers.
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/shiftcoach/shiftcoach-api/internal/api"
	"github.com/shiftcoach/shiftcoach-api/internal/api/handler"
	"github.com/shiftcoach/shiftcoach-api/internal/config"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/langfuse"
	"github.com/shiftcoach/shiftcoach-api/internal/llm"
	"github.com/shiftcoach/shiftcoach-api/internal/repository"
	"github.com/shiftcoach/shiftcoach-api/internal/seed"
	"github.com/shiftcoach/shiftcoach-api/internal/service"
	"github.com/shiftcoach/shiftcoach-api/internal/telemetry"
)

const serviceName = "shiftcoach-api"

func main() {
	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)

	db, err := config.NewDatabase(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	logger.Info().Msg("database connection established")

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.SleepSession{},
		&domain.ShiftDay{},
		&domain.ActivityRecord{},
		&domain.DailyScore{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}
	logger.Info().Msg("database migration completed")

	if cfg.Seed {
		logger.Info().Msg("seeding database with sample data (SEED=true)")
		if err := seed.Run(db); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed database")
		}
	}

	shutdownTracer, err := telemetry.InitTracer(context.Background(), cfg, serviceName)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			logger.Warn().Err(err).Msg("tracer shutdown failed")
		}
	}()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sleepRepo := repository.NewSleepSessionRepository(db)
	shiftRepo := repository.NewShiftDayRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	dailyRepo := repository.NewDailyScoreRepository(db)

	// LLM client may be nil when no API key is configured; the coach
	// endpoint then reports 503.
	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAICoachModel)
	if openaiClient == nil {
		logger.Warn().Msg("OPENAI_API_KEY not configured, coach endpoint will be unavailable")
	}

	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	}, logger)

	// Services
	userService := service.NewUserService(userRepo)
	sleepService := service.NewSleepService(sleepRepo, userRepo)
	shiftService := service.NewShiftService(shiftRepo, userRepo)
	activityService := service.NewActivityService(activityRepo, userRepo)
	scoreService := service.NewScoreService(userRepo, sleepRepo, shiftRepo, activityRepo, dailyRepo, logger)
	coachService := service.NewCoachService(scoreService, userRepo, dailyRepo, openaiClient, langfuseClient, logger)

	// Handlers
	userHandler := handler.NewUserHandler(userService)
	sleepHandler := handler.NewSleepHandler(sleepService)
	shiftHandler := handler.NewShiftHandler(shiftService)
	activityHandler := handler.NewActivityHandler(activityService)
	scoreHandler := handler.NewScoreHandler(scoreService)
	coachHandler := handler.NewCoachHandler(coachService)

	router := api.NewRouter(userHandler, sleepHandler, shiftHandler, activityHandler, scoreHandler, coachHandler, logger)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("starting server")
	if err := http.ListenAndServe(addr, router.Setup()); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
