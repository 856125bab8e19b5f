package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/studyflash/internal/api"
	"github.com/vytor/studyflash/internal/config"
	"github.com/vytor/studyflash/internal/db"
	"github.com/vytor/studyflash/internal/jobs"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/repository/sqlite"
	"github.com/vytor/studyflash/internal/services"
	"github.com/vytor/studyflash/internal/worker"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration:\n%w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("studyflash starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)
	log.Debug("session_default_size=%d, session_max_size=%d", cfg.SessionDefaultSize, cfg.SessionMaxSize)
	log.Debug("rate_limit_rps=%v, rate_limit_burst=%d", cfg.RateLimitRPS, cfg.RateLimitBurst)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	profileRepo := sqlite.NewProfileRepository(database.DB)
	deckRepo := sqlite.NewDeckRepository(database.DB)
	cardRepo := sqlite.NewFlashcardRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	importService := services.NewImportService(cardRepo, deckRepo, nil)
	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)

	srv := &api.Server{
		DB:               database,
		ProfileService:   services.NewProfileService(profileRepo),
		DeckService:      services.NewDeckService(deckRepo),
		FlashcardService: services.NewFlashcardService(cardRepo, deckRepo, nil),
		SessionService:   services.NewSessionService(cardRepo, deckRepo, cfg.SessionDefaultSize, cfg.SessionMaxSize, nil),
		StatsService:     services.NewStatsService(statsRepo, nil),
		ImportService:    importService,
		JobQueue:         jobs.NewWorkerQueue(importPool, importService),
		ReviewLimiter:    api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		AllowedOrigins:   cfg.CORSAllowedOrigins,
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	importPool.Start(workerCtx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error: %v", err)
		}

		log.Debug("stopping import pool")
		importPool.Stop()
		return nil
	})

	err = g.Wait()
	log.Info("studyflash stopped")
	return err
}
