package ocr

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/recruitflow/resume-parser/constants"
)

func (e *Extractor) extractPDF(ctx context.Context, dir, path, lang string) ExtractionResult {
	text, pages, err := e.pdfTextLayer(ctx, path)
	if err != nil {
		e.logger.Warn("ocr.pdf.text_layer_failed", "error", err)
	}
	// Adequacy is judged over the whole document, not just page one.
	if strings.TrimSpace(text) != "" {
		return ExtractionResult{Text: text, Mode: constants.ModeTextLayer, Pages: pages}
	}

	text, pages, err = e.pdfOCR(ctx, dir, path, lang)
	if err != nil {
		e.logger.Error("ocr.pdf.ocr_failed", "error", err)
		return ExtractionResult{Mode: constants.ModeFailed}
	}
	return ExtractionResult{Text: text, Mode: constants.ModeOCRScan, Pages: pages}
}

func (e *Extractor) pdfTextLayer(ctx context.Context, path string) (text string, pages int, err error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", 0, fmt.Errorf("pdftotext: %w: %s", err, truncate(string(errb), 512))
	}
	text = string(out)
	// A form-feed \f is used as page separator by default
	pages = 1 + strings.Count(text, "\f")
	return text, pages, nil
}

// pdfOCR rasterizes every page (no page cap) and OCRs them one at a time in
// page order. A page that fails OCR contributes empty text instead of
// aborting the document.
func (e *Extractor) pdfOCR(ctx context.Context, dir, path, lang string) (string, int, error) {
	prefix := filepath.Join(dir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <dir/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return "", 0, fmt.Errorf("pdftoppm: %w: %s", err, truncate(string(errb), 512))
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...); pdftoppm
	// zero-pads page numbers, so lexical order is page order
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return "", 0, fmt.Errorf("pdftoppm produced no images")
	}

	texts := make([]string, 0, len(matches))
	for _, img := range matches {
		txt, err := e.tesseract(ctx, img, lang)
		if err != nil {
			e.logger.Warn("ocr.pdf.page_failed", "page", filepath.Base(img), "error", err)
			txt = ""
		}
		texts = append(texts, txt)
	}
	return strings.Join(texts, "\n"), len(matches), nil
}
