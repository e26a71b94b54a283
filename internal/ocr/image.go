package ocr

import (
	"context"
	"fmt"

	"github.com/recruitflow/resume-parser/constants"
)

func (e *Extractor) extractImage(ctx context.Context, path, lang string) ExtractionResult {
	txt, err := e.tesseract(ctx, path, lang)
	if err != nil {
		e.logger.Error("ocr.image.failed", "error", err)
		return ExtractionResult{Mode: constants.ModeFailed}
	}
	return ExtractionResult{Text: Normalize(txt), Mode: constants.ModeOCRImage, Pages: 1}
}

func (e *Extractor) tesseract(ctx context.Context, path, lang string) (string, error) {
	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, path, "stdout", "-l", lang)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, truncate(string(errb), 512))
	}
	return string(out), nil
}
