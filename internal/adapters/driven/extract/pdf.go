package extract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrPDFToolNotFound is returned when pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// CommandRunner executes external commands. Abstracted for testing.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// CheckAvailable verifies pdftotext is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform hints for installing pdftotext.
func InstallInstructions() string {
	return `PDF extraction requires pdftotext (poppler):
  macOS:  brew install poppler
  Debian: apt install poppler-utils`
}

// extractPDF converts a PDF to text with pdftotext, reading the result
// from stdout ("-" output target).
func (e *Extractor) extractPDF(ctx context.Context, path string) (string, error) {
	if err := CheckAvailable(); err != nil {
		return "", err
	}

	output, err := e.runner.Run(ctx, "pdftotext", "-layout", path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return string(output), nil
}
