package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/recruitflow/resume-parser/internal/store"
)

// Lister is the slice of the results store this service needs.
type Lister interface {
	List(ctx context.Context, limit, offset int) ([]*store.Record, error)
}

// Service produces XLSX bytes from stored parse results, one candidate per
// row, for handoff to recruiters.
type Service struct {
	results Lister
	logger  *slog.Logger
}

func NewService(results Lister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{results: results, logger: logger}
}

// ExportCandidatesXLSX returns a workbook of the newest parsed candidates.
// limit <= 0 exports the store's default page size.
func (s *Service) ExportCandidatesXLSX(ctx context.Context, limit int) ([]byte, error) {
	start := time.Now()

	recs, err := s.results.List(ctx, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("query parse results: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Candidates"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Parsed At",
		"Full Name",
		"Email",
		"Phone",
		"Position",
		"Location",
		"Skills",
		"School",
		"GPA",
		"Quality",
		"Resume URL",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		cand := r.Result.Candidate

		school, gpa := "", ""
		if len(r.Result.Education) > 0 {
			school = r.Result.Education[0].School
			gpa = r.Result.Education[0].GPA
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.CreatedAt.Format("2006-01-02 15:04"))
		write(2, cand.FullName)
		write(3, cand.Email)
		write(4, cand.Phone)
		write(5, r.Position)
		write(6, cand.Location)
		write(7, truncate(strings.Join(cand.Skills, ", "), 140))
		write(8, school)
		write(9, gpa)
		write(10, fmt.Sprintf("%.2f", cand.QualityScore))
		write(11, r.FileURL)

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 18) // timestamp
	_ = f.SetColWidth(sheet, "B", "B", 26) // name
	_ = f.SetColWidth(sheet, "C", "C", 30) // email
	_ = f.SetColWidth(sheet, "D", "E", 20) // phone, position
	_ = f.SetColWidth(sheet, "F", "F", 24) // location
	_ = f.SetColWidth(sheet, "G", "G", 48) // skills
	_ = f.SetColWidth(sheet, "H", "H", 30) // school
	_ = f.SetColWidth(sheet, "K", "K", 60) // url

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
