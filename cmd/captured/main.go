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

	"github.com/joseph-ayodele/journal-capture/internal/classify"
	"github.com/joseph-ayodele/journal-capture/internal/common"
	"github.com/joseph-ayodele/journal-capture/internal/extract"
	"github.com/joseph-ayodele/journal-capture/internal/pipeline"
	"github.com/joseph-ayodele/journal-capture/internal/server"
)

func main() {
	// Setup structured logger that outputs messages with variables but no time/level
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time and level attributes, keep message and other variables
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	tax, err := classify.LoadTaxonomy(cfg.Taxonomy.Path)
	if err != nil {
		// Taxonomy problems fall back to the built-in vocabulary.
		logger.Warn("taxonomy load failed, using defaults", "path", cfg.Taxonomy.Path, "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc := pipeline.NewProcessor(
		pipeline.NewOrchestrator(
			extract.NewImageClient(cfg.Image, logger),
			extract.NewDocumentClient(cfg.Document, logger),
			logger,
		),
		classify.NewResolver(classify.NewClient(cfg.Classify, tax, logger), logger),
		logger,
	)

	handler := server.NewHandler(server.Deps{
		Processor: proc,
		Token:     cfg.Server.AuthToken,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("capture service listening", "addr", cfg.Server.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("capture service stopped")
}
