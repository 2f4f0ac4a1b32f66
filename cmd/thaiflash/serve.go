package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vytor/thaiflash/internal/api"
	"github.com/vytor/thaiflash/internal/jobs"
	"github.com/vytor/thaiflash/internal/logger"
	"github.com/vytor/thaiflash/internal/repository"
	"github.com/vytor/thaiflash/internal/repository/memory"
	"github.com/vytor/thaiflash/internal/repository/sqlite"
	"github.com/vytor/thaiflash/internal/services"
	"github.com/vytor/thaiflash/internal/worker"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the JSON API for playing games over HTTP.

Configuration comes from the environment (or a .env file):
  ADDR, DB_PATH, LOG_LEVEL, LOG_FORMAT, CATALOG_PATH,
  ARCHIVE_WORKER_COUNT, ARCHIVE_QUEUE_SIZE,
  SESSION_TTL_MINUTES, MAX_SESSIONS

Examples:
  thaiflash serve
  thaiflash serve --addr :9090 --db ""`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = flagAddr
	}

	log := setupLogger(cfg)

	log.Info("===========================================")
	log.Info("ThaiFlash Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("catalog_path=%s", cfg.CatalogPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("archive_worker_count=%d", cfg.ArchiveWorkerCount)
	log.Debug("archive_queue_size=%d", cfg.ArchiveQueueSize)
	log.Debug("session_ttl=%s", cfg.SessionTTL())
	log.Debug("max_sessions=%d", cfg.MaxSessions)

	catalog, err := loadCatalog(cfg)
	if err != nil {
		log.Error("failed to load catalog: %v", err)
		return err
	}
	log.Info("catalog loaded: %d items", len(catalog))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &api.Server{Catalog: catalog}

	var (
		results repository.ResultRepository
		queue   jobs.ResultQueue
		pool    *worker.Pool
	)
	database, err := openArchive(cfg)
	if err != nil {
		log.Error("failed to open database: %v", err)
		return err
	}
	if database != nil {
		defer func() {
			log.Debug("closing database connection")
			database.Close()
		}()
		srv.DB = database
		results = sqlite.NewResultRepository(database.DB)

		pool = worker.NewPool(cfg.ArchiveWorkerCount, cfg.ArchiveQueueSize)
		pool.Start(context.Background())
		queue = jobs.NewWorkerQueue(pool, results)
	} else {
		log.Warn("results archive disabled, finished games will not be stored")
	}

	srv.GameService = services.NewGameService(catalog, memory.NewSessionRepository(cfg.MaxSessions), queue, nil)
	srv.ScoreService = services.NewScoreService(results)

	go sweepSessions(ctx, srv.GameService, cfg.SessionTTL())

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error("HTTP server error: %v", err)
			return err
		}
	case <-ctx.Done():
		log.Info("received shutdown signal, initiating graceful shutdown")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Abandon what is still in play so it reaches the archive.
	if n, err := srv.GameService.Sweep(shutdownCtx, 0); err != nil {
		log.Error("final sweep failed: %v", err)
	} else if n > 0 {
		log.Info("closed %d sessions on shutdown", n)
	}

	if pool != nil {
		log.Debug("stopping archive pool")
		pool.Stop()
	}

	log.Info("===========================================")
	log.Info("ThaiFlash Server Stopped")
	log.Info("===========================================")
	return nil
}

// sweepSessions evicts idle games until ctx is cancelled.
func sweepSessions(ctx context.Context, games services.GameService, ttl time.Duration) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := games.Sweep(ctx, ttl); err != nil {
				logger.Warn("session sweep failed: %v", err)
			}
		}
	}
}
