package domain

import "time"

// IndexHealth describes the vector index state.
type IndexHealth string

const (
	// IndexNotReady means no durable snapshot exists yet and the index
	// is empty.
	IndexNotReady IndexHealth = "not_ready"

	// IndexOK means the index is loaded and usable.
	IndexOK IndexHealth = "ok"

	// IndexError means the snapshot failed to load or decode.
	IndexError IndexHealth = "error"
)

// Health is a point-in-time system status report.
type Health struct {
	// OK is the aggregate verdict: the store is reachable and the index
	// is either usable or simply empty.
	OK bool `json:"ok"`

	// DB is "ok" or "error".
	DB string `json:"db"`

	// Index is the vector index health.
	Index IndexHealth `json:"index"`

	// Vectors is the number of embeddings in the index.
	Vectors int `json:"vectors"`

	// CheckedAt is when the check ran.
	CheckedAt time.Time `json:"checked_at"`
}
