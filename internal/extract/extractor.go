package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tenderlens/tenderlens/constants"
	"github.com/tenderlens/tenderlens/internal/common"
)

// Extractor dispatches on the document format and owns format-specific
// decoding. PDF and DOCX support depend on optional capabilities; when a
// capability is missing the extractor fails with DEPENDENCY_UNAVAILABLE
// instead of degrading silently.
type Extractor struct {
	pdf    PDFReader
	docx   DocxReader
	logger *slog.Logger
}

func NewExtractor(cfg common.ExtractConfig, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		pdf:    NewPdftotextReader(cfg.Pdftotext, nil),
		docx:   NewPandocReader(cfg.Pandoc, nil),
		logger: logger,
	}
}

// NewExtractorWithReaders wires explicit capabilities; either may be nil to
// model an unavailable dependency.
func NewExtractorWithReaders(pdf PDFReader, docx DocxReader, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{pdf: pdf, docx: docx, logger: logger}
}

func (e *Extractor) Extract(ctx context.Context, doc Document) (string, error) {
	start := time.Now()
	logger := e.logger
	if reqID := common.RequestIDFromContext(ctx); reqID != "" {
		logger = logger.With("req_id", reqID)
	}
	logger.Debug("extract.start", "name", doc.Name, "format", string(doc.Format), "bytes", len(doc.Data))

	var (
		text string
		err  error
	)
	switch doc.Format {
	case constants.TEXT:
		text, err = e.extractText(doc)
	case constants.PDF:
		text, err = e.extractPDF(ctx, doc)
	case constants.DOCX:
		text, err = e.extractDocx(ctx, doc)
	default:
		err = common.Errorf(common.KindUnsupportedFormat, "unsupported document format %q for %q", string(doc.Format), doc.Name)
	}
	if err != nil {
		logger.Error("extract.failed", "name", doc.Name, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		err = common.Errorf(common.KindExtractionFailed, "document %q produced no text", doc.Name)
		logger.Error("extract.empty", "name", doc.Name)
		return "", err
	}

	logger.Info("extract.ok", "name", doc.Name, "format", string(doc.Format), "chars", len(text), "elapsed_ms", time.Since(start).Milliseconds())
	return text, nil
}

func (e *Extractor) extractText(doc Document) (string, error) {
	if !utf8.Valid(doc.Data) {
		return "", common.Errorf(common.KindExtractionFailed, "document %q is not valid UTF-8 text", doc.Name)
	}
	return string(doc.Data), nil
}

func (e *Extractor) extractPDF(ctx context.Context, doc Document) (string, error) {
	if e.pdf == nil || !e.pdf.Available() {
		return "", common.Errorf(common.KindDependencyUnavailable, "pdf reader is not available")
	}
	pages, err := e.pdf.PageTexts(ctx, doc.Data)
	if err != nil {
		return "", common.NewAppError(common.KindExtractionFailed, "pdf extraction failed for "+doc.Name, err)
	}

	// Pages join in document order, each followed by a blank-line separator.
	var b strings.Builder
	for _, p := range pages {
		b.WriteString(p)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

func (e *Extractor) extractDocx(ctx context.Context, doc Document) (string, error) {
	if e.docx == nil || !e.docx.Available() {
		return "", common.Errorf(common.KindDependencyUnavailable, "docx reader is not available")
	}
	text, err := e.docx.RawText(ctx, doc.Data)
	if err != nil {
		return "", common.NewAppError(common.KindExtractionFailed, "docx extraction failed for "+doc.Name, err)
	}
	return text, nil
}
