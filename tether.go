// Package tether is a document-oriented persistence layer for memory- and
// flash-constrained devices: JSON-shaped documents in a single backing
// file, with point lookup, conjunctive filtering, deletion and age-based
// retention cleanup.
//
// The core lives in the store, docval, query, epoch and idgen packages;
// this package re-exports the common entry points and provides the
// decorator-style write wrapper.
package tether

import (
	"github.com/tetherdb/tether/docval"
	"github.com/tetherdb/tether/store"
)

// DB is the document database. See the store package for the full API and
// its persistence and concurrency contracts.
type DB = store.DB

// Open loads or creates a database at path.
var Open = store.Open

// Producer is a function whose returned document gets persisted.
type Producer func() (docval.Object, error)

// Tether wraps a document-producing function so that every successful call
// also writes its result to db. The producer's own error short-circuits
// the write; write options apply to every persisted document.
//
//	readSensor := tether.Tether(db, pollSensor)
//	err := readSensor() // polls, then persists the reading
func Tether(db *DB, fn Producer, opts ...store.WriteOption) func() error {
	return func() error {
		doc, err := fn()
		if err != nil {
			return err
		}
		return db.Write(doc, opts...)
	}
}
