// Package chunker provides a deterministic fixed-size text splitter.
package chunker

import (
	"strings"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of bytes per chunk.
const DefaultChunkSize = 800

// DefaultOverlap is the default number of overlapping bytes between
// consecutive chunks.
const DefaultOverlap = 200

// Chunker splits text into overlapping fixed-size windows.
// Splitting is pure: identical inputs always produce identical output.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithChunkSize sets the window size in bytes.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		c.chunkSize = size
	}
}

// WithOverlap sets the overlap between consecutive windows in bytes.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		c.overlap = overlap
	}
}

// New creates a Chunker. The configuration is validated eagerly:
// a non-positive size, a negative overlap, or an overlap that equals or
// exceeds the size would make the scan never advance and is rejected
// with domain.ErrInvalidChunking.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.chunkSize <= 0 || c.overlap < 0 || c.overlap >= c.chunkSize {
		return nil, domain.ErrInvalidChunking
	}

	return c, nil
}

// ChunkSize returns the configured window size.
func (c *Chunker) ChunkSize() int { return c.chunkSize }

// Overlap returns the configured window overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Split cuts text into windows of at most chunkSize bytes, advancing by
// chunkSize-overlap each step. Each window is trimmed of surrounding
// whitespace and empty windows are dropped. Empty input yields nil.
func (c *Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}

	stride := c.chunkSize - c.overlap
	chunks := make([]string, 0, len(text)/stride+1)

	for start := 0; start < len(text); start += stride {
		end := start + c.chunkSize
		if end > len(text) {
			end = len(text)
		}

		window := strings.TrimSpace(text[start:end])
		if window != "" {
			chunks = append(chunks, window)
		}
	}

	if len(chunks) == 0 {
		return nil
	}
	return chunks
}
