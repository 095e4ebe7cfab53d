package store

import (
	"iter"

	"github.com/tetherdb/tether/docval"
	"github.com/tetherdb/tether/epoch"
	"github.com/tetherdb/tether/query"
)

// ReadOption configures how documents are rendered on the way out.
type ReadOption func(*readOptions)

type readOptions struct {
	rawTimestamp bool
}

// WithRawTimestamp renders the timestamp field as stored epoch-relative
// seconds instead of ISO-8601 with the configured offset.
func WithRawTimestamp() ReadOption {
	return func(o *readOptions) { o.rawTimestamp = true }
}

// Get looks up one document by ID. O(1) against the cached mapping; the
// file is not read. Returns a not-found error for an absent ID, matching
// Delete's contract.
func (db *DB) Get(id string, opts ...ReadOption) (docval.Object, error) {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}

	doc, ok := db.docs[id]
	if !ok {
		return nil, notFoundError(id)
	}
	return db.render(doc, o), nil
}

// All returns a lazy sequence over every document in storage order. The
// sequence is a snapshot of the ID list taken at call time; it is finite
// and single-use by convention.
func (db *DB) All(opts ...ReadOption) iter.Seq[docval.Object] {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}

	ids := make([]string, len(db.ids))
	copy(ids, db.ids)

	return func(yield func(docval.Object) bool) {
		for _, id := range ids {
			doc, ok := db.docs[id]
			if !ok {
				continue
			}
			if !yield(db.render(doc, o)) {
				return
			}
		}
	}
}

// Filter returns a lazy sequence over documents satisfying every
// predicate, in storage order. Predicates are evaluated against the stored
// form, so the timestamp field is seen as raw epoch-relative seconds
// regardless of render options. No match yields an empty sequence, never
// nil.
func (db *DB) Filter(preds []query.Predicate, opts ...ReadOption) iter.Seq[docval.Object] {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}

	ids := make([]string, len(db.ids))
	copy(ids, db.ids)

	return func(yield func(docval.Object) bool) {
		for _, id := range ids {
			doc, ok := db.docs[id]
			if !ok {
				continue
			}
			if !query.MatchAll(doc, preds) {
				continue
			}
			if !yield(db.render(doc, o)) {
				return
			}
		}
	}
}

// render clones a stored document and applies timestamp rendering.
func (db *DB) render(doc docval.Object, o readOptions) docval.Object {
	out := doc.Clone()
	if o.rawTimestamp {
		return out
	}
	if ts, ok := out[FieldTimestamp].(docval.Number); ok {
		out[FieldTimestamp] = docval.String(epoch.Format(int64(ts), db.offsetMinutes))
	}
	return out
}
