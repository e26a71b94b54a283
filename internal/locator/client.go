// Package locator talks to the Apps Script bridge that watches the hiring
// inbox: it resolves the newest application email and the Drive URL of its
// resume attachment.
package locator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/recruitflow/resume-parser/internal/common"
)

type Config struct {
	URL     string
	Token   string
	Timeout time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

// MessageRef identifies one application email.
type MessageRef struct {
	MessageID string `json:"message_id"`
	Subject   string `json:"subject"`
}

// FileRef points at the resume attachment staged on Drive.
type FileRef struct {
	FileURL  string `json:"file_url"`
	FileMIME string `json:"file_mime"`
	FileID   string `json:"file_id"`
}

func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("locator: bridge url is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}, nil
}

// NewestMessage returns the most recent unprocessed application email.
func (c *Client) NewestMessage(ctx context.Context) (MessageRef, error) {
	var ref MessageRef
	err := c.post(ctx, map[string]any{
		"token":  c.cfg.Token,
		"action": "get_newest_message_id",
	}, &ref)
	if err != nil {
		return MessageRef{}, err
	}
	if ref.MessageID == "" {
		return MessageRef{}, common.NewAppError("LOCATOR_ERROR", "bridge returned no message id", common.ErrExternalService)
	}
	return ref, nil
}

// FileURLForMessage resolves the Drive URL of the message's attachment. The
// bridge stages the attachment on Drive when it hasn't already.
func (c *Client) FileURLForMessage(ctx context.Context, messageID string) (FileRef, error) {
	var ref FileRef
	err := c.post(ctx, map[string]any{
		"token":      c.cfg.Token,
		"action":     "get_file_url_for_message",
		"message_id": messageID,
	}, &ref)
	if err != nil {
		return FileRef{}, err
	}
	if ref.FileURL == "" {
		return FileRef{}, common.NewAppError("LOCATOR_ERROR", "bridge returned no file url", common.ErrExternalService)
	}
	return ref, nil
}

// post sends one action and decodes the reply into out. The bridge always
// answers 200 with an "ok" flag, so the flag is the real status.
func (c *Client) post(ctx context.Context, payload map[string]any, out any) error {
	start := time.Now()
	action, _ := payload["action"].(string)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal locator payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return common.NewAppError("LOCATOR_ERROR", "invalid bridge url", errors.Join(common.ErrExternalService, err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("locator.http_error", "action", action, "err", err)
		return common.NewAppError("LOCATOR_ERROR", "bridge request failed", errors.Join(common.ErrExternalService, err))
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warn("locator.body_close_error", "error", cerr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return common.NewAppError("LOCATOR_ERROR", "bridge read failed", errors.Join(common.ErrExternalService, err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Error("locator.bad_status", "action", action, "status", resp.StatusCode)
		return common.NewAppError("LOCATOR_ERROR",
			fmt.Sprintf("bridge returned status %d", resp.StatusCode), common.ErrExternalService)
	}

	var ok struct {
		OK bool `json:"ok"`
	}
	if err := json.Unmarshal(raw, &ok); err != nil {
		return common.NewAppError("LOCATOR_ERROR", "bridge reply is not JSON", errors.Join(common.ErrExternalService, err))
	}
	if !ok.OK {
		c.log.Error("locator.not_ok", "action", action, "reply", string(raw))
		return common.NewAppError("LOCATOR_ERROR", "bridge reported failure", common.ErrExternalService)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return common.NewAppError("LOCATOR_ERROR", "bridge reply shape mismatch", errors.Join(common.ErrExternalService, err))
	}

	c.log.Info("locator.ok", "action", action, "elapsed_ms", time.Since(start).Milliseconds())
	return nil
}

var reDriveID = regexp.MustCompile(`(?:/d/|[?&]id=)([a-zA-Z0-9_-]{20,})`)

// DriveFileID pulls the file id out of a Drive share link. Returns "" when
// the link carries none.
func DriveFileID(url string) string {
	m := reDriveID.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// DriveDirectURL builds the unauthenticated download URL for a public Drive
// file.
func DriveDirectURL(fileID string) string {
	return "https://drive.google.com/uc?export=download&id=" + fileID
}
