// parsecv parses a single resume from a local file or URL and prints the
// result as JSON. Handy for trying out extraction settings without the
// daemon.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/recruitflow/resume-parser/constants"
	"github.com/recruitflow/resume-parser/internal/common"
	"github.com/recruitflow/resume-parser/internal/core"
	"github.com/recruitflow/resume-parser/internal/fetch"
	"github.com/recruitflow/resume-parser/internal/llm"
	"github.com/recruitflow/resume-parser/internal/ocr"
	"github.com/recruitflow/resume-parser/internal/parser"
)

func main() {
	var (
		mimeFlag = flag.String("mime", "", "declared MIME type (default: guessed from the name)")
		langFlag = flag.String("lang", "", "tesseract language hint, e.g. vie+eng")
		rawFlag  = flag.Bool("raw-text", false, "include recovered raw text in the output")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: parsecv [flags] <file-or-url>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	target := flag.Arg(0)

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var (
		data []byte
		mime string
		err  error
	)
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		fetcher := fetch.NewFetcher(cfg.MaxUploadBytes, cfg.Locator.Timeout, logger)
		data, mime, err = fetcher.Fetch(ctx, target)
	} else {
		data, err = os.ReadFile(target)
		mime = constants.GuessMIME(target)
	}
	if err != nil {
		logger.Error("read document", "target", target, "error", err)
		os.Exit(1)
	}
	if *mimeFlag != "" {
		mime = *mimeFlag
	}

	extractor := ocr.NewExtractor(ocr.Config{
		Pdftotext: cfg.OCR.Pdftotext,
		Pdftoppm:  cfg.OCR.Pdftoppm,
		Tesseract: cfg.OCR.Tesseract,
		Languages: cfg.OCR.Languages,
		DPI:       cfg.OCR.DPI,
	}, logger)

	var strategy core.Strategy
	if cfg.HasLLMCredential() {
		modelStrategy, closeFn, berr := llm.NewFromConfig(ctx, cfg.LLM, logger)
		if berr != nil {
			logger.Error("build model strategy", "error", berr)
			os.Exit(1)
		}
		defer closeFn()
		strategy = modelStrategy
	} else {
		strategy = parser.NewHeuristic(logger)
	}

	processor := core.NewProcessor(logger, extractor, strategy)
	pr, err := processor.Process(ctx, data, mime, *langFlag)
	if err != nil {
		logger.Error("parse failed", "error", err)
		os.Exit(1)
	}
	if !*rawFlag {
		pr.RawText = ""
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(pr); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
}
