package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/recruitflow/resume-parser/internal/common"
	"github.com/recruitflow/resume-parser/internal/core"
)

const wellFormedReply = `{"candidate": {"full_name": "Nguyễn Văn An", "skills": ["Go"]}}`

type fakeCompleter struct {
	reply  string
	err    error
	called int
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.called++
	f.prompt = prompt
	return f.reply, f.err
}

type fakeGenerator struct {
	reply      string
	err        error
	textCalls  int
	blobCalls  int
	gotMIME    string
	gotRawSize int
}

func (f *fakeGenerator) GenerateText(_ context.Context, _ string) (string, error) {
	f.textCalls++
	return f.reply, f.err
}

func (f *fakeGenerator) GenerateBlob(_ context.Context, _, mimeType string, data []byte) (string, error) {
	f.blobCalls++
	f.gotMIME = mimeType
	f.gotRawSize = len(data)
	return f.reply, f.err
}

func longText() string {
	return strings.Repeat("kinh nghiệm làm việc ", 20)
}

func TestModelStrategyRoutesRichTextToCompleter(t *testing.T) {
	completer := &fakeCompleter{reply: wellFormedReply}
	generator := &fakeGenerator{reply: wellFormedReply}
	s, err := NewModelStrategy(StrategyConfig{MinTextForText: 100}, completer, generator, nil)
	if err != nil {
		t.Fatal(err)
	}

	pr, err := s.Parse(context.Background(), core.Document{Text: longText()})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if completer.called != 1 || generator.textCalls != 0 || generator.blobCalls != 0 {
		t.Errorf("routing: completer=%d text=%d blob=%d", completer.called, generator.textCalls, generator.blobCalls)
	}
	if !strings.Contains(completer.prompt, "kinh nghiệm") {
		t.Error("prompt must carry the document text")
	}
	if pr.Candidate.FullName != "Nguyễn Văn An" {
		t.Errorf("result: got %q", pr.Candidate.FullName)
	}
}

func TestModelStrategyRoutesSparseTextToBlob(t *testing.T) {
	generator := &fakeGenerator{reply: wellFormedReply}
	s, err := NewModelStrategy(StrategyConfig{MinTextForText: 100}, nil, generator, nil)
	if err != nil {
		t.Fatal(err)
	}

	raw := []byte("%PDF-1.4 fake")
	_, err = s.Parse(context.Background(), core.Document{Text: "abc", Raw: raw, MIME: "application/pdf"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if generator.blobCalls != 1 || generator.textCalls != 0 {
		t.Errorf("routing: text=%d blob=%d", generator.textCalls, generator.blobCalls)
	}
	if generator.gotMIME != "application/pdf" || generator.gotRawSize != len(raw) {
		t.Errorf("blob call: mime=%q size=%d", generator.gotMIME, generator.gotRawSize)
	}
}

func TestModelStrategyGeneratorTextWhenNoCompleter(t *testing.T) {
	generator := &fakeGenerator{reply: wellFormedReply}
	s, err := NewModelStrategy(StrategyConfig{MinTextForText: 100}, nil, generator, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Parse(context.Background(), core.Document{Text: longText()}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if generator.textCalls != 1 || generator.blobCalls != 0 {
		t.Errorf("routing: text=%d blob=%d", generator.textCalls, generator.blobCalls)
	}
}

func TestModelStrategyNoUsableInput(t *testing.T) {
	completer := &fakeCompleter{reply: wellFormedReply}
	s, err := NewModelStrategy(StrategyConfig{MinTextForText: 100}, completer, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Parse(context.Background(), core.Document{Text: "   ", Raw: []byte("x")})
	if !errors.Is(err, common.ErrExtractionEmpty) {
		t.Fatalf("got %v, want ErrExtractionEmpty", err)
	}
}

func TestModelStrategyMalformedReply(t *testing.T) {
	completer := &fakeCompleter{reply: "sorry, I cannot help with that"}
	s, err := NewModelStrategy(StrategyConfig{MinTextForText: 1}, completer, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Parse(context.Background(), core.Document{Text: "some resume text"})
	if !errors.Is(err, common.ErrMalformedLLMOutput) {
		t.Fatalf("got %v, want ErrMalformedLLMOutput", err)
	}
}

func TestModelStrategyBackendFailure(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("boom")}
	s, err := NewModelStrategy(StrategyConfig{MinTextForText: 1}, completer, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Parse(context.Background(), core.Document{Text: "some resume text"})
	if !errors.Is(err, common.ErrExternalService) {
		t.Fatalf("got %v, want ErrExternalService", err)
	}
}

func TestModelStrategyCanParseRaw(t *testing.T) {
	generator := &fakeGenerator{reply: wellFormedReply}
	withGen, _ := NewModelStrategy(StrategyConfig{}, nil, generator, nil)
	if !withGen.CanParseRaw(core.Document{Raw: []byte("x")}) {
		t.Error("generator present with raw bytes must be parseable")
	}
	if withGen.CanParseRaw(core.Document{}) {
		t.Error("no raw bytes must not be parseable")
	}

	completerOnly, _ := NewModelStrategy(StrategyConfig{}, &fakeCompleter{}, nil, nil)
	if completerOnly.CanParseRaw(core.Document{Raw: []byte("x")}) {
		t.Error("completer-only strategy cannot parse raw bytes")
	}
}

func TestNewModelStrategyRequiresBackend(t *testing.T) {
	if _, err := NewModelStrategy(StrategyConfig{}, nil, nil, nil); err == nil {
		t.Fatal("expected error with no backends")
	}
}
