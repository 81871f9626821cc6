// Package extract turns uploaded files into raw text, dispatching on
// the file extension. Supported formats are plain text, DOCX and PDF.
package extract
