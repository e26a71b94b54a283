package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/recruitflow/resume-parser/internal/common"
)

func TestFetchOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 data"))
	}))
	defer srv.Close()

	f := NewFetcher(1024, time.Second, nil)
	data, mime, err := f.Fetch(context.Background(), srv.URL+"/cv.pdf")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "%PDF-1.4 data" {
		t.Errorf("data: got %q", data)
	}
	if mime != "application/pdf" {
		t.Errorf("mime: got %q", mime)
	}
}

func TestFetchMIMEFallsBackToExtension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("png bytes"))
	}))
	defer srv.Close()

	f := NewFetcher(1024, time.Second, nil)
	_, mime, err := f.Fetch(context.Background(), srv.URL+"/scan.png")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if mime != "image/png" {
		t.Errorf("mime: got %q, want image/png", mime)
	}
}

func TestFetchTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer srv.Close()

	f := NewFetcher(50, time.Second, nil)
	_, _, err := f.Fetch(context.Background(), srv.URL)
	// An over-ceiling abort is a fetch failure with its own code.
	if !errors.Is(err, common.ErrFetch) {
		t.Fatalf("got %v, want ErrFetch", err)
	}
	var appErr *common.AppError
	if !errors.As(err, &appErr) || appErr.Code != "FILE_TOO_LARGE" {
		t.Fatalf("got %v, want FILE_TOO_LARGE", err)
	}
}

func TestFetchExactLimitPasses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 50)))
	}))
	defer srv.Close()

	f := NewFetcher(50, time.Second, nil)
	data, _, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(data) != 50 {
		t.Errorf("data: got %d bytes", len(data))
	}
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(1024, time.Second, nil)
	_, _, err := f.Fetch(context.Background(), srv.URL)
	if !errors.Is(err, common.ErrFetch) {
		t.Fatalf("got %v, want ErrFetch", err)
	}
}

func TestFetchConnectionError(t *testing.T) {
	f := NewFetcher(1024, 200*time.Millisecond, nil)
	_, _, err := f.Fetch(context.Background(), "http://127.0.0.1:1/nothing")
	if !errors.Is(err, common.ErrFetch) {
		t.Fatalf("got %v, want ErrFetch", err)
	}
}
