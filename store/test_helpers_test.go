package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetherdb/tether/docval"
	"github.com/tetherdb/tether/epoch"
	"github.com/tetherdb/tether/query"
)

// newTestDB opens a database in a temp dir with a pinned clock so tests
// never depend on wall time.
func newTestDB(t *testing.T, opts ...Option) (*DB, *epoch.ManualClock) {
	t.Helper()
	clock := epoch.NewManualClock(1_000_000)
	path := filepath.Join(t.TempDir(), "tether.db")

	all := append([]Option{WithClock(clock)}, opts...)
	db, err := Open(path, all...)
	require.NoError(t, err)
	return db, clock
}

func mustWrite(t *testing.T, db *DB, doc docval.Object, opts ...WriteOption) {
	t.Helper()
	require.NoError(t, db.Write(doc, opts...))
}

func mustPredicates(t *testing.T, pairs ...any) []query.Predicate {
	t.Helper()
	require.Zero(t, len(pairs)%2, "pairs must alternate path, value")

	var preds []query.Predicate
	for i := 0; i < len(pairs); i += 2 {
		v, err := docval.FromGo(pairs[i+1])
		require.NoError(t, err)
		p, err := query.New(pairs[i].(string), v)
		require.NoError(t, err)
		preds = append(preds, p)
	}
	return preds
}

func collect(seq func(yield func(docval.Object) bool)) []docval.Object {
	var out []docval.Object
	seq(func(doc docval.Object) bool {
		out = append(out, doc)
		return true
	})
	return out
}
