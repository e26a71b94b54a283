package llm

import (
	"context"
	"log/slog"

	"github.com/recruitflow/resume-parser/internal/common"
	"github.com/recruitflow/resume-parser/internal/llm/gemini"
	"github.com/recruitflow/resume-parser/internal/llm/openai"
)

// NewFromConfig builds the model strategy from whichever credentials are
// configured. The returned close function releases backend resources and is
// safe to call once; callers must have checked that at least one credential
// is present.
func NewFromConfig(ctx context.Context, cfg common.LLMConfig, logger *slog.Logger) (*ModelStrategy, func(), error) {
	var (
		completer Completer
		generator Generator
		closeFn   = func() {}
	)

	if cfg.OpenAIKey != "" {
		oc, err := openai.NewClient(openai.Config{
			APIKey:      cfg.OpenAIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			Model:       cfg.OpenAIModel,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		completer = oc
	}
	if cfg.GeminiKey != "" {
		gc, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:      cfg.GeminiKey,
			Model:       cfg.GeminiModel,
			Temperature: cfg.Temperature,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		generator = gc
		closeFn = func() { _ = gc.Close() }
	}

	strategy, err := NewModelStrategy(StrategyConfig{
		MinTextForText:  cfg.MinTextForText,
		PromptCharCap:   cfg.PromptCharCap,
		BlobTextCharCap: cfg.GeminiCharCap,
		Timeout:         cfg.Timeout,
	}, completer, generator, logger)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return strategy, closeFn, nil
}
