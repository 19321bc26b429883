// Package storage persists vessel position records and executes the
// deletions ordered by the retention engine.
//
// Two backends implement the Store interface: a SQLite backend for
// production and an in-memory backend for tests. The analysis pipeline only
// depends on the interface, so the decision logic is testable without a
// database file.
package storage
