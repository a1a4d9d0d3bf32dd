package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/dilvane/internal/api"
	"github.com/vytor/dilvane/internal/config"
	"github.com/vytor/dilvane/internal/db"
	"github.com/vytor/dilvane/internal/generator"
	"github.com/vytor/dilvane/internal/lesson"
	"github.com/vytor/dilvane/internal/llm"
	"github.com/vytor/dilvane/internal/logger"
	"github.com/vytor/dilvane/internal/repository/sqlite"
	"github.com/vytor/dilvane/internal/scheduler"
	"github.com/vytor/dilvane/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Dilvane Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("openai_model=%s", cfg.OpenAIModel)
	log.Debug("lesson_size=%d", cfg.LessonSize)
	log.Debug("session_ttl=%v", cfg.SessionTTL())
	log.Debug("lesson_idle_timeout=%v", cfg.LessonIdleTimeout())
	log.Debug("housekeeping_interval=%v", cfg.HousekeepingInterval())

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	users := sqlite.NewUserRepository(database.DB)
	sessions := sqlite.NewSessionRepository(database.DB)
	words := sqlite.NewVocabularyRepository(database.DB)
	notes := sqlite.NewNoteRepository(database.DB)
	progress := sqlite.NewProgressRepository(database.DB)
	lessons := sqlite.NewLessonRepository(database.DB)

	var provider llm.Provider
	openai, err := llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	})
	switch {
	case stderrors.Is(err, llm.ErrNotConfigured):
		log.Warn("OPENAI_API_KEY not set, lesson generation is disabled")
		provider = llm.Disabled{}
	case err != nil:
		log.Error("failed to create llm provider: %v", err)
		os.Exit(1)
	default:
		provider = llm.WithRetry(openai, llm.DefaultRetryConfig())
	}

	genCfg := generator.DefaultConfig()
	genCfg.LessonSize = cfg.LessonSize

	authService := services.NewAuthService(users, sessions, progress, services.AuthConfig{SessionTTL: cfg.SessionTTL()})
	lessonService := services.NewLessonService(services.LessonDeps{
		Users:     users,
		Words:     words,
		Notes:     notes,
		Progress:  progress,
		Lessons:   lessons,
		Generator: generator.New(provider, genCfg),
		Store:     lesson.NewStore(cfg.LessonIdleTimeout()),
	}, services.LessonConfig{LessonSize: cfg.LessonSize})

	srv := &api.Server{
		DB:           database.DB,
		Auth:         authService,
		Users:        services.NewUserService(users),
		Vocabulary:   services.NewVocabularyService(words, notes),
		Progress:     services.NewProgressService(progress, words, lessons),
		Lessons:      lessonService,
		CookieSecure: cfg.CookieSecure,
	}

	sched := scheduler.New()
	for _, job := range []scheduler.Job{
		&scheduler.PurgeSessionsJob{Sessions: authService},
		&scheduler.EvictLessonsJob{Lessons: lessonService},
	} {
		if err := sched.Every(cfg.HousekeepingInterval(), job); err != nil {
			log.Error("failed to schedule %s: %v", job.Name(), err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	sched.Start(ctx)

	// Lesson generation can take a while, so the write timeout is generous.
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping scheduler")
	cancel()
	sched.Stop()

	log.Info("===========================================")
	log.Info("Dilvane Server Stopped")
	log.Info("===========================================")
}
