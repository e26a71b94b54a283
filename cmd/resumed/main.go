// resumed is the resume parsing daemon: it serves the HTTP API backed by
// the extraction pipeline, the results store, and the inbox bridge.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/recruitflow/resume-parser/internal/common"
	"github.com/recruitflow/resume-parser/internal/core"
	"github.com/recruitflow/resume-parser/internal/export"
	"github.com/recruitflow/resume-parser/internal/fetch"
	"github.com/recruitflow/resume-parser/internal/llm"
	"github.com/recruitflow/resume-parser/internal/locator"
	"github.com/recruitflow/resume-parser/internal/ocr"
	"github.com/recruitflow/resume-parser/internal/parser"
	"github.com/recruitflow/resume-parser/internal/server"
	"github.com/recruitflow/resume-parser/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		logger.Error("open results store", "path", cfg.Store.Path, "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := results.Close(); cerr != nil {
			logger.Error("close results store", "error", cerr)
		}
	}()

	extractor := ocr.NewExtractor(ocr.Config{
		Pdftotext: cfg.OCR.Pdftotext,
		Pdftoppm:  cfg.OCR.Pdftoppm,
		Tesseract: cfg.OCR.Tesseract,
		Languages: cfg.OCR.Languages,
		DPI:       cfg.OCR.DPI,
	}, logger)

	// Strategy selection happens once at startup: credentials present means
	// the model-backed path, otherwise the offline heuristic.
	var strategy core.Strategy
	if cfg.HasLLMCredential() {
		modelStrategy, closeFn, err := llm.NewFromConfig(ctx, cfg.LLM, logger)
		if err != nil {
			logger.Error("build model strategy", "error", err)
			os.Exit(1)
		}
		defer closeFn()
		strategy = modelStrategy
	} else {
		strategy = parser.NewHeuristic(logger)
	}
	logger.Info("strategy selected", "strategy", strategy.Name())

	processor := core.NewProcessor(logger, extractor, strategy)
	fetcher := fetch.NewFetcher(cfg.MaxUploadBytes, cfg.Locator.Timeout, logger)

	var loc *locator.Client
	if cfg.Locator.URL != "" {
		loc, err = locator.NewClient(locator.Config{
			URL:     cfg.Locator.URL,
			Token:   cfg.Locator.Token,
			Timeout: cfg.Locator.Timeout,
		}, logger)
		if err != nil {
			logger.Error("build locator client", "error", err)
			os.Exit(1)
		}
	}

	service := server.NewService(processor, fetcher, loc, results, logger)
	exporter := export.NewService(results, logger)
	srv := server.NewServer(cfg.Server, service, results, exporter, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}
