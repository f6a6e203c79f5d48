package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnatyNomsa/pitchpal/internal/api/handlers"
	"github.com/UnatyNomsa/pitchpal/internal/api/router"
	"github.com/UnatyNomsa/pitchpal/internal/config"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/logger"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/validator"
	"github.com/UnatyNomsa/pitchpal/internal/providers"
	"github.com/UnatyNomsa/pitchpal/internal/repository/postgres"
	"github.com/UnatyNomsa/pitchpal/internal/services"
	"github.com/UnatyNomsa/pitchpal/internal/worker"
	"github.com/UnatyNomsa/pitchpal/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, migrations.GetFS()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)

	// External AI provider
	aiClient := providers.NewOpenAIClient(cfg.Provider.OpenAIAPIKey)

	// Services
	userService := services.NewUserService(userRepo, sessionRepo, log)
	sessionService := services.NewSessionService(sessionRepo, log)
	analysisService := services.NewAnalysisService(aiClient, log)
	practiceService := services.NewPracticeService(userService, sessionService, analysisService, log)

	// Handlers
	val := validator.New()
	h := &router.Handlers{
		Health:   handlers.NewHealthHandler(db, log),
		Auth:     handlers.NewAuthHandler(cfg.Auth, log, val),
		Session:  handlers.NewSessionHandler(practiceService, sessionService, log, val),
		Analysis: handlers.NewAnalysisHandler(practiceService, analysisService, log, val),
		User:     handlers.NewUserHandler(userService, log, val),
	}

	// Retention sweep
	var sweeper *worker.RetentionSweeper
	if cfg.Retention.Enabled {
		sweeper = worker.NewRetentionSweeper(userRepo, sessionRepo, log)
		if err := sweeper.Start(cfg.Retention.Schedule); err != nil {
			log.Fatalf("Failed to start retention sweeper: %v", err)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
	}

	if sweeper != nil {
		sweeper.Stop()
	}

	log.Info("Server stopped")
}
