package export

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/recruitflow/resume-parser/internal/entity"
	"github.com/recruitflow/resume-parser/internal/store"
)

type fakeLister struct {
	recs []*store.Record
	err  error
	got  int
}

func (f *fakeLister) List(_ context.Context, limit, _ int) ([]*store.Record, error) {
	f.got = limit
	return f.recs, f.err
}

func testRecord() *store.Record {
	pr := entity.NewParseResult()
	pr.Candidate.FullName = "Trần Thị Bình"
	pr.Candidate.Email = "binh@example.com"
	pr.Candidate.Phone = "+84912345678"
	pr.Candidate.Location = "Hà Nội"
	pr.Candidate.Skills = []string{"Go", "PostgreSQL"}
	pr.Candidate.QualityScore = 0.87
	pr.Education = append(pr.Education, entity.EducationItem{
		School: "Đại học Bách Khoa", GPA: "3.6/4",
	})
	return &store.Record{
		CreatedAt: time.Date(2026, 8, 30, 9, 15, 0, 0, time.UTC),
		Position:  "Backend Developer",
		FileURL:   "https://example.com/cv.pdf",
		Result:    pr,
	}
}

func TestExportCandidatesXLSX(t *testing.T) {
	lister := &fakeLister{recs: []*store.Record{testRecord()}}
	svc := NewService(lister, nil)

	out, err := svc.ExportCandidatesXLSX(context.Background(), 100)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if lister.got != 100 {
		t.Errorf("limit passed to lister: got %d", lister.got)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	cells := map[string]string{
		"A1": "Parsed At",
		"B1": "Full Name",
		"K1": "Resume URL",
		"A2": "2026-08-30 09:15",
		"B2": "Trần Thị Bình",
		"C2": "binh@example.com",
		"D2": "+84912345678",
		"E2": "Backend Developer",
		"F2": "Hà Nội",
		"G2": "Go, PostgreSQL",
		"H2": "Đại học Bách Khoa",
		"I2": "3.6/4",
		"J2": "0.87",
		"K2": "https://example.com/cv.pdf",
	}
	for cell, want := range cells {
		got, err := f.GetCellValue("Candidates", cell)
		if err != nil {
			t.Fatalf("read %s: %v", cell, err)
		}
		if got != want {
			t.Errorf("%s: got %q, want %q", cell, got, want)
		}
	}
}

func TestExportPropagatesStoreError(t *testing.T) {
	lister := &fakeLister{err: errors.New("db gone")}
	svc := NewService(lister, nil)
	if _, err := svc.ExportCandidatesXLSX(context.Background(), 0); err == nil {
		t.Fatal("expected error from lister")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"abcdefghijk", 10, "abcdefghi…"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d): got %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
