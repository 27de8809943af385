package extract

import (
	"context"

	"github.com/tenderlens/tenderlens/constants"
)

// Document is an uploaded payload: raw bytes plus the declared format and a
// human-readable name. It is consumed once by extraction and never persisted.
type Document struct {
	Name   string
	Format constants.DocumentFormat
	Data   []byte
}

// TextExtractor turns an uploaded document into plain text.
// Extraction either fully succeeds with non-empty text or fails; partial
// output is never returned as success.
type TextExtractor interface {
	Extract(ctx context.Context, doc Document) (string, error)
}

// PDFReader is the optional page-rendering capability behind PDF extraction.
// Implementations must return page texts in document order.
type PDFReader interface {
	Available() bool
	PageTexts(ctx context.Context, data []byte) ([]string, error)
}

// DocxReader is the optional rich-document capability behind DOCX extraction.
type DocxReader interface {
	Available() bool
	RawText(ctx context.Context, data []byte) (string, error)
}
