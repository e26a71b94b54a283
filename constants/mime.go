package constants

import (
	"path"
	"strings"
)

// FileTypes holds the document formats the extractor understands.
const (
	PDF   = "PDF"
	IMAGE = "IMAGE"
)

// Extraction modes recorded on every parse (audit trail for which text
// recovery strategy actually ran).
const (
	ModeTextLayer = "text_layer"
	ModeOCRScan   = "ocr_scan"
	ModeOCRImage  = "ocr_image"
	ModeFailed    = "failed"
)

// ParserVersion is stamped on every ParseResult.
const ParserVersion = "v1"

var mimeFormats = map[string]string{
	"application/pdf": PDF,
	"image/png":       IMAGE,
	"image/jpeg":      IMAGE,
	"image/jpg":       IMAGE,
	"image/bmp":       IMAGE,
	"image/tiff":      IMAGE,
	"image/tif":       IMAGE,
}

var extMIMEs = map[string]string{
	"pdf":  "application/pdf",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"bmp":  "image/bmp",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapMIMEToFormat resolves a declared MIME type to a document format.
// Returns "" for anything the pipeline cannot handle.
func MapMIMEToFormat(mime string) string {
	m := strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = strings.TrimSpace(m[:i])
	}
	return mimeFormats[m]
}

// GuessMIME guesses a MIME type from a URL or file name extension.
// Falls back to application/pdf, which is what resume attachments
// overwhelmingly are.
func GuessMIME(name string) string {
	ext := NormalizeExt(path.Ext(name))
	if m, ok := extMIMEs[ext]; ok {
		return m
	}
	return "application/pdf"
}
