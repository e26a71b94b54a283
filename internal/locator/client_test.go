package locator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/recruitflow/resume-parser/internal/common"
)

func TestNewestMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["action"] != "get_newest_message_id" {
			t.Errorf("action: got %v", req["action"])
		}
		if req["token"] != "secret" {
			t.Errorf("token: got %v", req["token"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"message_id": "msg-123",
			"subject":    "Ứng tuyển Backend Developer",
		})
	}))
	defer srv.Close()

	c, err := NewClient(Config{URL: srv.URL, Token: "secret"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	msg, err := c.NewestMessage(context.Background())
	if err != nil {
		t.Fatalf("NewestMessage: %v", err)
	}
	if msg.MessageID != "msg-123" || msg.Subject != "Ứng tuyển Backend Developer" {
		t.Errorf("got %+v", msg)
	}
}

func TestFileURLForMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["message_id"] != "msg-123" {
			t.Errorf("message_id: got %v", req["message_id"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":        true,
			"file_url":  "https://drive.google.com/file/d/abcdefghijklmnopqrstuv/view",
			"file_mime": "application/pdf",
			"file_id":   "abcdefghijklmnopqrstuv",
		})
	}))
	defer srv.Close()

	c, _ := NewClient(Config{URL: srv.URL, Token: "secret"}, nil)
	ref, err := c.FileURLForMessage(context.Background(), "msg-123")
	if err != nil {
		t.Fatalf("FileURLForMessage: %v", err)
	}
	if ref.FileMIME != "application/pdf" || ref.FileID != "abcdefghijklmnopqrstuv" {
		t.Errorf("got %+v", ref)
	}
}

func TestBridgeReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "no new mail"})
	}))
	defer srv.Close()

	c, _ := NewClient(Config{URL: srv.URL}, nil)
	_, err := c.NewestMessage(context.Background())
	if !errors.Is(err, common.ErrExternalService) {
		t.Fatalf("got %v, want ErrExternalService", err)
	}
}

func TestBridgeBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, _ := NewClient(Config{URL: srv.URL}, nil)
	_, err := c.NewestMessage(context.Background())
	if !errors.Is(err, common.ErrExternalService) {
		t.Fatalf("got %v, want ErrExternalService", err)
	}
}

func TestNewClientRequiresURL(t *testing.T) {
	if _, err := NewClient(Config{}, nil); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestDriveFileID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://drive.google.com/file/d/abcdefghijklmnopqrstuv/view?usp=sharing", "abcdefghijklmnopqrstuv"},
		{"https://drive.google.com/uc?id=abcdefghijklmnopqrstuv&export=download", "abcdefghijklmnopqrstuv"},
		{"https://example.com/cv.pdf", ""},
	}
	for _, tt := range tests {
		if got := DriveFileID(tt.in); got != tt.want {
			t.Errorf("DriveFileID(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDriveDirectURL(t *testing.T) {
	want := "https://drive.google.com/uc?export=download&id=xyz"
	if got := DriveDirectURL("xyz"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
