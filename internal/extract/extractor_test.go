package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderlens/tenderlens/constants"
	"github.com/tenderlens/tenderlens/internal/common"
)

type fakePDFReader struct {
	pages []string
	err   error
	down  bool
}

func (f *fakePDFReader) Available() bool { return !f.down }

func (f *fakePDFReader) PageTexts(context.Context, []byte) ([]string, error) {
	return f.pages, f.err
}

type fakeDocxReader struct {
	text string
	err  error
	down bool
}

func (f *fakeDocxReader) Available() bool { return !f.down }

func (f *fakeDocxReader) RawText(context.Context, []byte) (string, error) {
	return f.text, f.err
}

func TestExtractPlainText(t *testing.T) {
	e := NewExtractorWithReaders(nil, nil, nil)

	text, err := e.Extract(context.Background(), Document{
		Name:   "requirements.txt",
		Format: constants.TEXT,
		Data:   []byte("PROJECT TITLE: X\n1. Shall use REST API."),
	})
	require.NoError(t, err)
	assert.Equal(t, "PROJECT TITLE: X\n1. Shall use REST API.", text)
}

func TestExtractTextInvalidUTF8(t *testing.T) {
	e := NewExtractorWithReaders(nil, nil, nil)

	_, err := e.Extract(context.Background(), Document{
		Name:   "bad.txt",
		Format: constants.TEXT,
		Data:   []byte{0xff, 0xfe, 0xfd},
	})
	require.Error(t, err)
	assert.Equal(t, common.KindExtractionFailed, common.KindOf(err))
}

func TestExtractEmptyDocumentFails(t *testing.T) {
	e := NewExtractorWithReaders(nil, nil, nil)

	_, err := e.Extract(context.Background(), Document{
		Name:   "empty.txt",
		Format: constants.TEXT,
		Data:   []byte("   \n\t"),
	})
	require.Error(t, err)
	assert.Equal(t, common.KindExtractionFailed, common.KindOf(err))
}

func TestExtractPDFJoinsPagesInOrder(t *testing.T) {
	pdf := &fakePDFReader{pages: []string{"A", "B", "C"}}
	e := NewExtractorWithReaders(pdf, nil, nil)

	text, err := e.Extract(context.Background(), Document{
		Name:   "tender.pdf",
		Format: constants.PDF,
		Data:   []byte("%PDF"),
	})
	require.NoError(t, err)
	assert.Equal(t, "A\n\nB\n\nC\n\n", text)
}

func TestExtractPDFReaderUnavailable(t *testing.T) {
	e := NewExtractorWithReaders(&fakePDFReader{down: true}, nil, nil)

	_, err := e.Extract(context.Background(), Document{Name: "t.pdf", Format: constants.PDF})
	require.Error(t, err)
	assert.Equal(t, common.KindDependencyUnavailable, common.KindOf(err))
}

func TestExtractPDFReaderFailurePropagates(t *testing.T) {
	pdf := &fakePDFReader{err: errors.New("xref table corrupt")}
	e := NewExtractorWithReaders(pdf, nil, nil)

	_, err := e.Extract(context.Background(), Document{Name: "t.pdf", Format: constants.PDF})
	require.Error(t, err)
	assert.Equal(t, common.KindExtractionFailed, common.KindOf(err))
	assert.Contains(t, err.Error(), "xref table corrupt")
}

func TestExtractDocxVerbatim(t *testing.T) {
	docx := &fakeDocxReader{text: "Scope of works.\nDeliverables."}
	e := NewExtractorWithReaders(nil, docx, nil)

	text, err := e.Extract(context.Background(), Document{Name: "t.docx", Format: constants.DOCX})
	require.NoError(t, err)
	assert.Equal(t, "Scope of works.\nDeliverables.", text)
}

func TestExtractDocxReaderUnavailable(t *testing.T) {
	e := NewExtractorWithReaders(nil, &fakeDocxReader{down: true}, nil)

	_, err := e.Extract(context.Background(), Document{Name: "t.docx", Format: constants.DOCX})
	require.Error(t, err)
	assert.Equal(t, common.KindDependencyUnavailable, common.KindOf(err))
}

func TestExtractUnsupportedFormat(t *testing.T) {
	e := NewExtractorWithReaders(nil, nil, nil)

	_, err := e.Extract(context.Background(), Document{Name: "t.csv", Format: "CSV"})
	require.Error(t, err)
	assert.Equal(t, common.KindUnsupportedFormat, common.KindOf(err))
}
