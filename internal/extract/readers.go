package extract

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// PdftotextReader extracts page texts by shelling out to pdftotext, which
// separates pages with form feeds.
type PdftotextReader struct {
	bin    string
	runner Runner
}

func NewPdftotextReader(bin string, runner Runner) *PdftotextReader {
	if bin == "" {
		bin = "pdftotext"
	}
	if runner == nil {
		runner = execRunner{}
	}
	return &PdftotextReader{bin: bin, runner: runner}
}

func (r *PdftotextReader) Available() bool {
	return r.runner.LookPath(r.bin) == nil
}

func (r *PdftotextReader) PageTexts(ctx context.Context, data []byte) ([]string, error) {
	path, cleanup, err := writeTemp(data, "*.pdf")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	out, errb, err := r.runner.Run(ctx, r.bin, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w: %s", err, truncate(string(errb), 1<<10))
	}

	// pdftotext emits a trailing \f after the last page.
	pages := strings.Split(string(out), "\f")
	if n := len(pages); n > 0 && pages[n-1] == "" {
		pages = pages[:n-1]
	}
	for i, p := range pages {
		pages[i] = strings.TrimRight(p, "\n")
	}
	return pages, nil
}

// PandocReader extracts docx raw text by shelling out to pandoc.
type PandocReader struct {
	bin    string
	runner Runner
}

func NewPandocReader(bin string, runner Runner) *PandocReader {
	if bin == "" {
		bin = "pandoc"
	}
	if runner == nil {
		runner = execRunner{}
	}
	return &PandocReader{bin: bin, runner: runner}
}

func (r *PandocReader) Available() bool {
	return r.runner.LookPath(r.bin) == nil
}

func (r *PandocReader) RawText(ctx context.Context, data []byte) (string, error) {
	path, cleanup, err := writeTemp(data, "*.docx")
	if err != nil {
		return "", err
	}
	defer cleanup()

	out, errb, err := r.runner.Run(ctx, r.bin, "-f", "docx", "-t", "plain", "--wrap=none", path)
	if err != nil {
		return "", fmt.Errorf("pandoc: %w: %s", err, truncate(string(errb), 1<<10))
	}
	return string(out), nil
}

func writeTemp(data []byte, pattern string) (string, func(), error) {
	f, err := os.CreateTemp("", "tenderlens-"+pattern)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return path, cleanup, nil
}
