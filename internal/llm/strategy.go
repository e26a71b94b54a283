package llm

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/recruitflow/resume-parser/internal/common"
	"github.com/recruitflow/resume-parser/internal/core"
	"github.com/recruitflow/resume-parser/internal/entity"
)

// StrategyConfig carries the routing knobs. Zero caps mean "no cap".
type StrategyConfig struct {
	// MinTextForText is the non-whitespace character count below which the
	// recovered text is considered too sparse to parse from text alone.
	MinTextForText int
	// PromptCharCap bounds the text handed to the completion backend.
	PromptCharCap int
	// BlobTextCharCap bounds the text handed to the multimodal backend.
	BlobTextCharCap int
	// Timeout bounds one model call end to end.
	Timeout time.Duration
}

// ModelStrategy parses resumes through a language model. It routes between a
// text completion backend and a multimodal one based on how much text the
// extraction recovered; either backend may be nil when its credential is
// absent, but not both.
type ModelStrategy struct {
	cfg       StrategyConfig
	completer Completer
	generator Generator
	logger    *slog.Logger
}

func NewModelStrategy(cfg StrategyConfig, completer Completer, generator Generator, logger *slog.Logger) (*ModelStrategy, error) {
	if completer == nil && generator == nil {
		return nil, errors.New("model strategy needs at least one backend")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MinTextForText <= 0 {
		cfg.MinTextForText = 100
	}
	return &ModelStrategy{cfg: cfg, completer: completer, generator: generator, logger: logger}, nil
}

func (s *ModelStrategy) Name() string { return "llm" }

// CanParseRaw reports whether this strategy can work from the original
// document bytes when no text was recovered.
func (s *ModelStrategy) CanParseRaw(doc core.Document) bool {
	return s.generator != nil && len(doc.Raw) > 0
}

// Parse routes the document to a backend, salvages and validates the JSON it
// returns, and maps it onto the canonical result. Enough recovered text goes
// to the cheaper text path; sparse or empty text falls back to attaching the
// original bytes when a multimodal backend is available.
func (s *ModelStrategy) Parse(ctx context.Context, doc core.Document) (*entity.ParseResult, error) {
	rid := uuid.New().String()
	start := time.Now()

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	textual := countNonSpace(doc.Text) >= s.cfg.MinTextForText
	hasText := strings.TrimSpace(doc.Text) != ""

	var (
		out     string
		backend string
		err     error
	)
	switch {
	case textual && s.completer != nil:
		backend = "completion"
		out, err = s.completer.Complete(ctx, BuildTextPrompt(doc.Text, s.cfg.PromptCharCap))
	case textual:
		backend = "generator_text"
		out, err = s.generator.GenerateText(ctx, BuildTextPrompt(doc.Text, s.cfg.BlobTextCharCap))
	case s.generator != nil && len(doc.Raw) > 0:
		backend = "generator_blob"
		out, err = s.generator.GenerateBlob(ctx, BuildBlobPrompt(), doc.MIME, doc.Raw)
	case hasText && s.completer != nil:
		// Sparse text and no multimodal backend: a short prompt beats
		// refusing outright.
		backend = "completion"
		out, err = s.completer.Complete(ctx, BuildTextPrompt(doc.Text, s.cfg.PromptCharCap))
	default:
		return nil, common.NewAppError("EXTRACTION_EMPTY", "no usable input for model extraction", common.ErrExtractionEmpty)
	}
	if err != nil {
		s.logger.Error("llm.parse.backend_failed",
			"req_id", rid, "backend", backend, "err", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		if errors.Is(err, common.ErrExternalService) {
			return nil, err
		}
		return nil, common.NewAppError("LLM_ERROR", "model call failed", errors.Join(common.ErrExternalService, err))
	}

	data, err := Salvage(out)
	if err != nil {
		s.logger.Error("llm.parse.salvage_failed", "req_id", rid, "backend", backend, "raw_len", len(out))
		return nil, err
	}
	if err := ValidateJSONAgainstSchema(BuildResultJSONSchema(), data); err != nil {
		s.logger.Error("llm.parse.schema_failed", "req_id", rid, "backend", backend, "err", err)
		return nil, common.NewAppError("MALFORMED_LLM_OUTPUT", "model output failed schema validation", errors.Join(common.ErrMalformedLLMOutput, err))
	}
	pr, err := DecodeResult(data)
	if err != nil {
		s.logger.Error("llm.parse.decode_failed", "req_id", rid, "backend", backend, "err", err)
		return nil, common.NewAppError("MALFORMED_LLM_OUTPUT", "model output did not decode", errors.Join(common.ErrMalformedLLMOutput, err))
	}

	s.logger.Info("llm.parse.ok",
		"req_id", rid,
		"backend", backend,
		"quality", pr.Candidate.QualityScore,
		"experiences", len(pr.Experiences),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return pr, nil
}

func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

var _ core.Strategy = (*ModelStrategy)(nil)
