// Package services implements the core application flows: document
// ingestion, retrieval-grounded question answering, history and status.
package services
