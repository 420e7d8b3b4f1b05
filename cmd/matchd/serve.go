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

	"github.com/breadbutter/matchd/internal/adapters/ai"
	"github.com/breadbutter/matchd/internal/adapters/http/api"
	"github.com/breadbutter/matchd/internal/adapters/repository"
	service "github.com/breadbutter/matchd/internal/app"
	"github.com/breadbutter/matchd/internal/config"
	"github.com/breadbutter/matchd/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the matching HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(parent context.Context) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := newStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	var embedder ai.Embedder
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("initializing embedder: %w", err)
		}
		embedder = gemini
		log.Info(ctx, "semantic scoring uses gemini embeddings")
	} else {
		log.Info(ctx, "no gemini api key; semantic scoring uses token overlap")
	}

	svc, err := service.New(
		service.WithStore(store),
		service.WithEmbedder(embedder),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithDefaultLimit(cfg.DefaultLimit),
		service.WithEmbedTimeout(time.Duration(cfg.EmbedTimeoutMS)*time.Millisecond),
		service.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("creating service: %w", err)
	}

	mux := http.NewServeMux()
	api.NewServer(svc).Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info(ctx, "shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	log.Info(ctx, "server stopped")
	return nil
}

func newStore(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.Store, error) {
	switch cfg.Store {
	case config.StorePostgres:
		store, err := repository.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting store: %w", err)
		}
		log.Info(ctx, "using postgres store")
		return store, nil
	default:
		store := repository.NewMemory()
		store.SeedSample()
		log.Info(ctx, "using in-memory store with sample data")
		return store, nil
	}
}
