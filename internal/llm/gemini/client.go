// Package gemini wraps the Google generative AI SDK as the multimodal
// backend: it can read either recovered text or the original document bytes.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/recruitflow/resume-parser/internal/common"
)

type Config struct {
	APIKey      string
	Model       string
	Temperature float32
}

type Client struct {
	client    *genai.Client
	modelName string
	temp      float32
	log       *slog.Logger
}

func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini: api key is required")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-pro"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{client: cl, modelName: cfg.Model, temp: cfg.Temperature, log: logger}, nil
}

func (c *Client) Close() error { return c.client.Close() }

// GenerateText runs a text-only prompt in JSON mode.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, "text", genai.Text(prompt))
}

// GenerateBlob attaches the original document bytes (PDF or image) so the
// model reads the layout directly instead of OCR output.
func (c *Client) GenerateBlob(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	return c.generate(ctx, "blob",
		genai.Text(prompt),
		genai.Blob{MIMEType: mimeType, Data: data},
	)
}

func (c *Client) generate(ctx context.Context, kind string, parts ...genai.Part) (string, error) {
	start := time.Now()

	m := c.client.GenerativeModel(c.modelName)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(c.temp)

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		c.log.Error("gemini.generate.error",
			"kind", kind, "model", c.modelName, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.NewAppError("LLM_ERROR", "gemini generate failed", errors.Join(common.ErrExternalService, err))
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		c.log.Error("gemini.generate.empty", "kind", kind, "model", c.modelName)
		return "", common.NewAppError("LLM_ERROR", "gemini returned no candidates", common.ErrExternalService)
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	out := b.String()
	c.log.Info("gemini.generate.ok",
		"kind", kind, "model", c.modelName,
		"content_len", len(out),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}
