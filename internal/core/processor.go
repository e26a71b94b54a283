package core

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/recruitflow/resume-parser/constants"
	"github.com/recruitflow/resume-parser/internal/common"
	"github.com/recruitflow/resume-parser/internal/entity"
	"github.com/recruitflow/resume-parser/internal/ocr"
)

// Document is the input handed to an extraction strategy: the original
// bytes (multimodal strategies may need them when the text is sparse) plus
// the recovered text and how it was recovered.
type Document struct {
	Raw  []byte
	MIME string
	Text string
	Mode string
}

// Strategy is the single extraction contract. The heuristic parser and the
// model-backed adapter both implement it; which one runs is decided once at
// construction from credential presence, never per call.
type Strategy interface {
	Name() string
	Parse(ctx context.Context, doc Document) (*entity.ParseResult, error)
}

// Processor coordinates text recovery then structured extraction.
type Processor struct {
	logger    *slog.Logger
	extractor *ocr.Extractor
	strategy  Strategy
}

func NewProcessor(logger *slog.Logger, extractor *ocr.Extractor, strategy Strategy) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, extractor: extractor, strategy: strategy}
}

// Process runs the full pipeline for one document: text recovery, strategy
// extraction, and result assembly. raw_text on the returned record always
// equals the text the strategy saw.
func (p *Processor) Process(ctx context.Context, data []byte, mime, langHint string) (*entity.ParseResult, error) {
	rid := uuid.New().String()
	start := time.Now()

	res, err := p.extractor.Extract(ctx, data, mime, langHint)
	if err != nil {
		p.logger.Error("processor.extract.failed", "req_id", rid, "err", err)
		return nil, err
	}
	p.logger.Debug("processor.extract.ok",
		"req_id", rid,
		"mode", res.Mode,
		"pages", res.Pages,
		"text_bytes", len(res.Text),
	)

	doc := Document{Raw: data, MIME: mime, Text: res.Text, Mode: res.Mode}
	if strings.TrimSpace(doc.Text) == "" && !p.canParseRaw(doc) {
		return nil, common.NewAppError("EXTRACTION_EMPTY", "no usable text recovered", common.ErrExtractionEmpty)
	}

	pr, err := p.strategy.Parse(ctx, doc)
	if err != nil {
		p.logger.Error("processor.parse.failed", "req_id", rid, "strategy", p.strategy.Name(), "err", err)
		return nil, err
	}

	// Assembly invariants, regardless of strategy.
	pr.OK = true
	pr.ParserVersion = constants.ParserVersion
	pr.RawText = doc.Text
	pr.Mode = doc.Mode

	p.logger.Info("processor.parse.ok",
		"req_id", rid,
		"strategy", p.strategy.Name(),
		"mode", res.Mode,
		"quality", pr.Candidate.QualityScore,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return pr, nil
}

// StrategyName names the strategy selected at construction.
func (p *Processor) StrategyName() string { return p.strategy.Name() }

// canParseRaw reports whether the selected strategy can still work from the
// original document bytes when no text was recovered (the multimodal path).
func (p *Processor) canParseRaw(doc Document) bool {
	rp, ok := p.strategy.(interface{ CanParseRaw(Document) bool })
	return ok && rp.CanParseRaw(doc)
}
