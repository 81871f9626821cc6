package driven

import "context"

// TextExtractor turns an uploaded file into raw text.
// Dispatch happens on the file extension; supported extensions are
// .txt, .pdf and .docx. Any other extension is rejected with
// domain.ErrUnsupportedFileType before the ingestion pipeline runs.
// Extraction failure is fatal to the upload.
type TextExtractor interface {
	// Extract returns the raw text content of the file at path.
	Extract(ctx context.Context, path string) (string, error)
}
