package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/mioNacs/Look4Git/internal/adapter/driven/github"
	httphandler "github.com/mioNacs/Look4Git/internal/adapter/driving/http"
	"github.com/mioNacs/Look4Git/internal/application"
	"github.com/mioNacs/Look4Git/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration; .env is optional and loses to real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"request_timeout", cfg.RequestTimeout,
		"api_rate_limit", cfg.GithubAPIRateLimit,
		"token_configured", cfg.GithubToken != "",
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Wire adapters and the aggregation service.
	ghClient, err := githubadapter.NewClient(cfg.GithubToken, cfg.GithubAPIURL, cfg.GithubGraphQLURL, cfg.GithubAPIRateLimit, cfg.RequestTimeout)
	if err != nil {
		return err
	}
	svc := application.NewService(ghClient, slog.Default())

	handler := httphandler.NewHandler(svc, slog.Default())
	mux := httphandler.NewServeMux(handler, slog.Default())

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 4. Serve until the context is canceled, then shut down gracefully.
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return <-errCh
}
