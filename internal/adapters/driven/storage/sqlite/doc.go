// Package sqlite provides the SQLite-backed metadata stores: documents,
// vector id correlation rows and the query history log.
package sqlite
