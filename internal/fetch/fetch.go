// Package fetch retrieves remote documents over HTTP with a hard byte
// ceiling, so a misbehaving host can't balloon memory.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/recruitflow/resume-parser/constants"
	"github.com/recruitflow/resume-parser/internal/common"
)

type Fetcher struct {
	client   *http.Client
	maxBytes int64
	log      *slog.Logger
}

func NewFetcher(maxBytes int64, timeout time.Duration, logger *slog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
		log:      logger,
	}
}

// Fetch downloads one document and returns its bytes plus a MIME type. The
// Content-Type header wins when usable; otherwise the type is guessed from
// the URL extension.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", common.NewAppError("FETCH_FAILED", "invalid document url", errors.Join(common.ErrFetch, err))
	}
	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Error("fetch.http_error", "url", url, "err", err)
		return nil, "", common.NewAppError("FETCH_FAILED", "document download failed", errors.Join(common.ErrFetch, err))
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			f.log.Warn("fetch.body_close_error", "error", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.log.Error("fetch.bad_status", "url", url, "status", resp.StatusCode)
		return nil, "", common.NewAppError("FETCH_FAILED",
			fmt.Sprintf("document host returned status %d", resp.StatusCode), common.ErrFetch)
	}

	// Read one byte past the ceiling to distinguish "exactly at the limit"
	// from "over it".
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, "", common.NewAppError("FETCH_FAILED", "document read failed", errors.Join(common.ErrFetch, err))
	}
	if n > f.maxBytes {
		f.log.Error("fetch.too_large", "url", url, "limit", f.maxBytes)
		return nil, "", common.NewAppError("FILE_TOO_LARGE",
			fmt.Sprintf("document exceeds the %d byte limit", f.maxBytes), common.ErrFetch)
	}

	mime := responseMIME(resp, url)
	f.log.Info("fetch.ok",
		"url", url,
		"bytes", n,
		"mime", mime,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), mime, nil
}

func responseMIME(resp *http.Response, url string) string {
	ct := strings.TrimSpace(resp.Header.Get("Content-Type"))
	if ct != "" && !strings.HasPrefix(ct, "application/octet-stream") && !strings.HasPrefix(ct, "text/html") {
		if i := strings.IndexByte(ct, ';'); i >= 0 {
			ct = strings.TrimSpace(ct[:i])
		}
		return strings.ToLower(ct)
	}
	return constants.GuessMIME(url)
}
