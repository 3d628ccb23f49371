package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Uttam-Mahata/questcart/internal/config"
	"github.com/Uttam-Mahata/questcart/internal/database"
	"github.com/Uttam-Mahata/questcart/internal/generator"
	"github.com/Uttam-Mahata/questcart/internal/handler"
	"github.com/Uttam-Mahata/questcart/internal/logger"
	"github.com/Uttam-Mahata/questcart/internal/repository"
	"github.com/Uttam-Mahata/questcart/internal/router"
	"github.com/Uttam-Mahata/questcart/internal/service"
	"github.com/Uttam-Mahata/questcart/internal/storage"
	"github.com/Uttam-Mahata/questcart/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting QuestCart Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Blob Storage ───────────────────────────────────────
	store, err := storage.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize blob storage")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	examRepo := repository.NewExamRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)

	// ─── Initialize Generator ──────────────────────────────────────────
	llm := generator.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, log)
	gen := generator.New(llm, log)

	// ─── Initialize Services ──────────────────────────────────────────
	locker := service.NewRedisSectionLocker(rdb, cfg.GenerationLockTTL, log)
	examService := service.NewExamService(examRepo, log)
	sectionService := service.NewSectionService(examRepo, store, cfg.MaxUploadBytes, log)
	questionService := service.NewQuestionService(
		examRepo, questionRepo, gen, locker, store, cfg.MaxUploadBytes, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Exam:     handler.NewExamHandler(examService),
		Section:  handler.NewSectionHandler(sectionService),
		Question: handler.NewQuestionHandler(questionService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
