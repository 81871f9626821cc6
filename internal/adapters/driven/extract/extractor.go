package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
	"github.com/wrenchworks/wrench-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// MaxFileSize is the upload size cap in bytes.
const MaxFileSize = 10 << 20 // 10 MB

// Extractor dispatches extraction on the file extension.
type Extractor struct {
	runner CommandRunner
}

// New creates an extractor using the real pdftotext command for PDFs.
func New() *Extractor {
	return &Extractor{runner: &execRunner{}}
}

// NewWithRunner creates an extractor with a custom command runner.
// Used in tests to avoid a pdftotext dependency.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Supported reports whether the extension is handled.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".pdf", ".docx":
		return true
	}
	return false
}

// Extract returns the raw text content of the file at path.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("checking file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("%s: %w: %d bytes exceeds %d byte limit",
			filepath.Base(path), domain.ErrFileTooLarge, info.Size(), MaxFileSize)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return extractText(path)
	case ".docx":
		return extractDocx(path)
	case ".pdf":
		return e.extractPDF(ctx, path)
	}
	return "", fmt.Errorf("%s: %w", filepath.Base(path), domain.ErrUnsupportedFileType)
}

// extractText reads a plain text file as-is.
func extractText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}
	return string(content), nil
}

// SanitizeFilename strips any path components and characters that could
// confuse downstream display or storage. The result is never empty.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_', r == ' ':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "upload"
	}
	return cleaned
}
