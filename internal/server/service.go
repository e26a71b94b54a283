package server

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"

	"github.com/recruitflow/resume-parser/constants"
	"github.com/recruitflow/resume-parser/internal/common"
	"github.com/recruitflow/resume-parser/internal/core"
	"github.com/recruitflow/resume-parser/internal/fetch"
	"github.com/recruitflow/resume-parser/internal/locator"
	"github.com/recruitflow/resume-parser/internal/parser"
	"github.com/recruitflow/resume-parser/internal/store"
)

// Service orchestrates one parse end to end: locate or receive the document,
// run the pipeline, persist the record. The HTTP handlers stay thin on top
// of it.
type Service struct {
	processor *core.Processor
	fetcher   *fetch.Fetcher
	locator   *locator.Client // nil when the inbox bridge isn't configured
	results   *store.Store
	logger    *slog.Logger
}

func NewService(processor *core.Processor, fetcher *fetch.Fetcher, loc *locator.Client, results *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		processor: processor,
		fetcher:   fetcher,
		locator:   loc,
		results:   results,
		logger:    logger,
	}
}

// ParseFromURL downloads the document and runs the pipeline. declaredMIME
// overrides detection when the caller knows better.
func (s *Service) ParseFromURL(ctx context.Context, fileURL, declaredMIME, langHint string) (*store.Record, error) {
	data, mime, err := s.fetcher.Fetch(ctx, fileURL)
	if err != nil {
		return nil, err
	}
	if m := strings.TrimSpace(declaredMIME); m != "" {
		mime = strings.ToLower(m)
	}
	return s.parseAndSave(ctx, data, mime, langHint, &store.Record{
		Source:  "url",
		FileURL: fileURL,
	})
}

// ParseBase64 decodes an inline payload and runs the pipeline. fileName is
// only a MIME fallback.
func (s *Service) ParseBase64(ctx context.Context, fileName, declaredMIME, payload, langHint string) (*store.Record, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, common.NewAppError("DECODE_FAILED", "file_base64 is not valid base64", errors.Join(common.ErrDecode, err))
	}
	mime := strings.ToLower(strings.TrimSpace(declaredMIME))
	if mime == "" {
		mime = constants.GuessMIME(fileName)
	}
	return s.parseAndSave(ctx, data, mime, langHint, &store.Record{
		Source: "base64",
	})
}

// ParseInbox resolves the newest application email through the bridge,
// fetches its attachment, and runs the pipeline. The email subject drives
// position matching.
func (s *Service) ParseInbox(ctx context.Context, langHint string) (*store.Record, string, error) {
	if s.locator == nil {
		return nil, "", common.NewAppError("LOCATOR_ERROR", "inbox bridge is not configured", common.ErrExternalService)
	}

	msg, err := s.locator.NewestMessage(ctx)
	if err != nil {
		return nil, "", err
	}
	file, err := s.locator.FileURLForMessage(ctx, msg.MessageID)
	if err != nil {
		return nil, "", err
	}

	fileURL := file.FileURL
	if id := locator.DriveFileID(fileURL); id != "" {
		fileURL = locator.DriveDirectURL(id)
	}
	data, mime, err := s.fetcher.Fetch(ctx, fileURL)
	if err != nil {
		return nil, "", err
	}
	if m := strings.TrimSpace(file.FileMIME); m != "" {
		mime = strings.ToLower(m)
	}

	rec, err := s.parseAndSave(ctx, data, mime, langHint, &store.Record{
		Source:   "inbox",
		Subject:  msg.Subject,
		Position: parser.ExtractPosition(msg.Subject),
		FileURL:  fileURL,
	})
	if err != nil {
		return nil, "", err
	}
	return rec, msg.MessageID, nil
}

func (s *Service) parseAndSave(ctx context.Context, data []byte, mime, langHint string, rec *store.Record) (*store.Record, error) {
	pr, err := s.processor.Process(ctx, data, mime, langHint)
	if err != nil {
		return nil, err
	}
	rec.Strategy = s.processor.StrategyName()
	rec.Mode = pr.Mode
	rec.Result = pr

	if s.results != nil {
		if err := s.results.Save(ctx, rec); err != nil {
			// Persistence failure shouldn't discard a successful parse.
			s.logger.Error("service.save_failed", "err", err)
		}
	}
	return rec, nil
}
