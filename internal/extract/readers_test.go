package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	stdout   []byte
	stderr   []byte
	err      error
	missing  bool
	lastName string
	lastArgs []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.lastName = name
	f.lastArgs = args
	return f.stdout, f.stderr, f.err
}

func (f *fakeRunner) LookPath(string) error {
	if f.missing {
		return errors.New("executable not found in $PATH")
	}
	return nil
}

func TestPdftotextReaderSplitsPages(t *testing.T) {
	r := NewPdftotextReader("pdftotext", &fakeRunner{stdout: []byte("A\n\fB\n\fC\n\f")})

	pages, err := r.PageTexts(context.Background(), []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, pages)
}

func TestPdftotextReaderSinglePage(t *testing.T) {
	r := NewPdftotextReader("", &fakeRunner{stdout: []byte("only page\n")})

	pages, err := r.PageTexts(context.Background(), []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, []string{"only page"}, pages)
}

func TestPdftotextReaderRunError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1"), stderr: []byte("Syntax Error: bad trailer")}
	r := NewPdftotextReader("pdftotext", runner)

	_, err := r.PageTexts(context.Background(), []byte("not a pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad trailer")
}

func TestReadersAvailability(t *testing.T) {
	assert.False(t, NewPdftotextReader("pdftotext", &fakeRunner{missing: true}).Available())
	assert.True(t, NewPdftotextReader("pdftotext", &fakeRunner{}).Available())
	assert.False(t, NewPandocReader("pandoc", &fakeRunner{missing: true}).Available())
	assert.True(t, NewPandocReader("pandoc", &fakeRunner{}).Available())
}

func TestPandocReaderReturnsStdout(t *testing.T) {
	runner := &fakeRunner{stdout: []byte("Scope of works.\n")}
	r := NewPandocReader("pandoc", runner)

	text, err := r.RawText(context.Background(), []byte("PK\x03\x04"))
	require.NoError(t, err)
	assert.Equal(t, "Scope of works.\n", text)
	assert.Equal(t, "pandoc", runner.lastName)
	assert.Contains(t, runner.lastArgs, "--wrap=none")
}
