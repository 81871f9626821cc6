package domain

import "time"

// HistoryEntry records one query/answer exchange with its provenance.
// Entries are append-only; they can be deleted individually or in bulk
// but never mutated.
type HistoryEntry struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id"`

	// Query is the user's question.
	Query string `json:"query"`

	// Answer is the generated response.
	Answer string `json:"answer"`

	// Sources lists the grounding excerpts in retrieval order.
	Sources []Source `json:"sources"`

	// UsedDocuments mirrors Answer.UsedDocuments.
	UsedDocuments bool `json:"used_documents"`

	// CreatedAt is when the exchange was recorded.
	CreatedAt time.Time `json:"created_at"`
}
