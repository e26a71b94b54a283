package ocr

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/recruitflow/resume-parser/constants"
	"github.com/recruitflow/resume-parser/internal/common"
)

// Config for the text extractor. External binaries are treated as black-box
// collaborators: pdftotext reads the PDF text layer, pdftoppm rasterizes,
// tesseract runs OCR.
type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Languages string // tesseract language codes, default "vie+eng"
	DPI       int    // rasterization DPI for scanned PDFs, default 300
}

// ExtractionResult is the outcome of text recovery for one document.
type ExtractionResult struct {
	Text     string
	Mode     string // constants.ModeTextLayer | ModeOCRScan | ModeOCRImage | ModeFailed
	Pages    int
	Language string
	Duration time.Duration
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Languages == "" {
		cfg.Languages = "vie+eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// Extract recovers text from document bytes, picking a strategy from the
// declared MIME type. PDFs try the text layer first; the adequacy check is
// over the whole document (stripped text non-empty). Inadequate text falls
// back to rasterizing every page and OCR-ing them in order. Images are
// OCR-ed directly. Unrecognized MIME types and total failures come back as
// ModeFailed with empty text rather than an error; the pipeline decides
// whether an empty result is fatal.
func (e *Extractor) Extract(ctx context.Context, data []byte, mime, langHint string) (ExtractionResult, error) {
	start := time.Now()
	lang := langHint
	if lang == "" {
		lang = e.cfg.Languages
	}

	format := constants.MapMIMEToFormat(mime)
	e.logger.Debug("ocr.extract.start", "mime", mime, "format", format, "bytes", len(data), "lang", lang)

	res := ExtractionResult{Mode: constants.ModeFailed, Language: lang}
	if format == "" {
		e.logger.Warn("ocr.extract.unsupported_mime", "mime", mime)
		res.Duration = time.Since(start)
		return res, nil
	}

	dir, err := os.MkdirTemp("", "rp-ocr-*")
	if err != nil {
		return res, common.WrapError(err, "create temp dir")
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			e.logger.Warn("ocr.extract.tmp_cleanup_failed", "dir", dir, "error", rmErr)
		}
	}()

	ext := "pdf"
	if format == constants.IMAGE {
		ext = "img"
	}
	path := filepath.Join(dir, "doc."+ext)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return res, common.WrapError(err, "write temp document")
	}

	switch format {
	case constants.PDF:
		res = e.extractPDF(ctx, dir, path, lang)
	case constants.IMAGE:
		res = e.extractImage(ctx, path, lang)
	}
	// Only OCR output gets whitespace cleanup; an embedded text layer is
	// returned verbatim.
	if res.Mode == constants.ModeOCRScan || res.Mode == constants.ModeOCRImage {
		res.Text = Normalize(res.Text)
	}
	res.Language = lang
	res.Duration = time.Since(start)

	e.logger.Info("ocr.extract.done",
		"mode", res.Mode,
		"pages", res.Pages,
		"text_bytes", len(res.Text),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
