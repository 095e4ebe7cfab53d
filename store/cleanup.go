package store

import (
	"slices"

	"github.com/tetherdb/tether/docval"
)

// Cleanup deletes every document strictly older than the retention
// horizon: now() - timestamp > maxAgeSeconds. All eligible documents are
// removed in a single commit to bound the rewrite cost; when nothing is
// eligible the commit is skipped entirely. Returns the count deleted.
//
// Passing maxAgeSeconds <= 0 falls back to the horizon configured with
// WithCleanupSeconds; if neither is set, that is a validation error.
func (db *DB) Cleanup(maxAgeSeconds int64) (int, error) {
	if maxAgeSeconds <= 0 {
		maxAgeSeconds = db.cleanupSeconds
	}
	if maxAgeSeconds <= 0 {
		return 0, validationError("no retention horizon: pass max age seconds or configure a default")
	}

	now := db.clock.Now()

	var expired []string
	for _, id := range db.ids {
		ts, ok := db.docs[id][FieldTimestamp].(docval.Number)
		if !ok {
			// Hand-edited file without a numeric timestamp - never eligible.
			db.logger.Debug("cleanup skipping document without timestamp", "id", id)
			continue
		}
		if now-int64(ts) > maxAgeSeconds {
			expired = append(expired, id)
		}
	}

	if len(expired) == 0 {
		db.logger.Debug("cleanup found nothing to delete", "max_age_seconds", maxAgeSeconds)
		return 0, nil
	}

	removed := make(map[string]docval.Object, len(expired))
	for _, id := range expired {
		removed[id] = db.docs[id]
		delete(db.docs, id)
	}
	oldIDs := db.ids
	db.ids = slices.DeleteFunc(slices.Clone(db.ids), func(id string) bool {
		_, gone := removed[id]
		return gone
	})

	if err := db.commit(); err != nil {
		db.ids = oldIDs
		for id, doc := range removed {
			db.docs[id] = doc
		}
		return 0, err
	}

	db.logger.Info("cleanup complete",
		"deleted", len(expired),
		"max_age_seconds", maxAgeSeconds,
		"documents", len(db.ids))
	return len(expired), nil
}
