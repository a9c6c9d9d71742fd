package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/pantry-chef/internal/config"
	"github.com/phrazzld/pantry-chef/internal/form"
	"github.com/phrazzld/pantry-chef/internal/generation"
	"github.com/phrazzld/pantry-chef/internal/platform/gemini"
)

// application holds the long-lived dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	generator generation.Generator
	registry  *form.Registry
}

// newApplication builds the Gemini generator once and wires it into the
// session registry.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	generator, err := gemini.NewGenerator(
		ctx,
		logger.With("component", "llm_generator"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized", "model", cfg.LLM.ModelName)

	return newApplicationWithGenerator(cfg, logger, generator), nil
}

// newApplicationWithGenerator wires an existing generator.
func newApplicationWithGenerator(
	cfg *config.Config,
	logger *slog.Logger,
	generator generation.Generator,
) *application {
	ttl := time.Duration(cfg.Server.SessionTTLMinutes) * time.Minute
	return &application{
		config:    cfg,
		logger:    logger,
		generator: generator,
		registry:  form.NewRegistry(generator, logger.With("component", "form_registry"), ttl),
	}
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	router, err := app.setupRouter()
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	go app.pruneSessions(ctx)

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// pruneSessions drops idle forms until ctx is canceled.
func (app *application) pruneSessions(ctx context.Context) {
	interval := time.Duration(app.config.Server.SessionTTLMinutes) * time.Minute / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := app.registry.Prune(); removed > 0 {
				app.logger.Info("Pruned idle sessions", "removed", removed)
			}
		}
	}
}
