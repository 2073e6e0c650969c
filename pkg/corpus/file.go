package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/natefinch/atomic"
)

// ErrUnsupportedFormat is returned by ReadFile for file extensions it cannot read.
var ErrUnsupportedFormat = errors.New("corpus: unsupported file format")

// ReadFile returns the text content of a local file. Plain-text files
// (.txt, .text, .md or no extension) are read as UTF-8; PDF files have the
// plain text of every page extracted.
func ReadFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case "", ".txt", ".text", ".md":
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(raw), nil
	case ".pdf":
		return readPDF(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// SaveFile atomically writes text to path, replacing any existing file.
func SaveFile(path, text string) error {
	if err := atomic.WriteFile(path, strings.NewReader(text)); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, pageErr := p.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no extractable text found in pdf %s", path)
	}
	return b.String(), nil
}
