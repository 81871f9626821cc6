package domain

// Source identifies a document excerpt that grounded an answer.
type Source struct {
	// Doc is the source document's filename, or "General Knowledge"
	// when the answer was not grounded in retrieved excerpts.
	Doc string `json:"doc"`

	// Excerpt is the retrieved text snippet.
	Excerpt string `json:"excerpt"`
}

// GeneralKnowledgeSource is returned when no document excerpts were used.
var GeneralKnowledgeSource = Source{
	Doc:     "General Knowledge",
	Excerpt: "Response based on general maintenance best practices",
}

// Answer is the result of one maintenance query.
type Answer struct {
	// Text is the generated answer.
	Text string `json:"answer"`

	// Sources lists the grounding excerpts in retrieval order.
	Sources []Source `json:"sources"`

	// UsedDocuments is true iff the answer was grounded in at least one
	// retrieved excerpt.
	UsedDocuments bool `json:"used_documents"`
}
