package store

import (
	"slices"

	"github.com/tetherdb/tether/docval"
)

// Delete removes exactly one document and commits. An absent ID is a
// not-found error with count 0, the same contract Get applies.
func (db *DB) Delete(id string) (int, error) {
	doc, ok := db.docs[id]
	if !ok {
		return 0, notFoundError(id)
	}

	idx := slices.Index(db.ids, id)
	db.ids = slices.Delete(db.ids, idx, idx+1)
	delete(db.docs, id)

	if err := db.commit(); err != nil {
		db.ids = slices.Insert(db.ids, idx, id)
		db.docs[id] = doc
		return 0, err
	}

	db.logger.Info("document deleted", "id", id, "documents", len(db.ids))
	return 1, nil
}

// DeleteAll empties the mapping, commits, and returns the prior count.
func (db *DB) DeleteAll() (int, error) {
	prior := len(db.ids)
	oldIDs, oldDocs := db.ids, db.docs

	db.ids = nil
	db.docs = make(map[string]docval.Object)

	if err := db.commit(); err != nil {
		db.ids, db.docs = oldIDs, oldDocs
		return 0, err
	}

	db.logger.Info("all documents deleted", "count", prior)
	return prior, nil
}
