package llm

import "context"

// Completer is a text-in, JSON-text-out completion backend. The
// OpenAI-compatible client implements it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator is a multimodal backend that can work either from text or from
// the original document bytes. The Gemini client implements it.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateBlob(ctx context.Context, prompt, mimeType string, data []byte) (string, error)
}
