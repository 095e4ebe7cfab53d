package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetherdb/tether/docval"
	"github.com/tetherdb/tether/idgen"
)

func TestGetRendersISOTimestamp(t *testing.T) {
	db, clock := newTestDB(t, WithGenerator(idgen.NewFixedGenerator("1")))
	clock.Set(0) // the epoch origin itself

	mustWrite(t, db, docval.Object{"x": docval.Number(1)})

	doc, err := db.Get("1")
	require.NoError(t, err)
	assert.True(t, docval.Equal(docval.String("2000-01-01T00:00:00+00:00"), doc[FieldTimestamp]))
}

func TestGetRendersOffsetTimestamp(t *testing.T) {
	db, clock := newTestDB(t,
		WithGenerator(idgen.NewFixedGenerator("1")),
		WithUTCOffsetMinutes(330),
	)
	clock.Set(0)

	mustWrite(t, db, docval.Object{"x": docval.Number(1)})

	doc, err := db.Get("1")
	require.NoError(t, err)
	assert.True(t, docval.Equal(docval.String("2000-01-01T05:30:00+05:30"), doc[FieldTimestamp]))
}

func TestGetRawTimestamp(t *testing.T) {
	db, clock := newTestDB(t, WithGenerator(idgen.NewFixedGenerator("1")))
	clock.Set(777)

	mustWrite(t, db, docval.Object{"x": docval.Number(1)})

	doc, err := db.Get("1", WithRawTimestamp())
	require.NoError(t, err)
	assert.True(t, docval.Equal(docval.Number(777), doc[FieldTimestamp]))
}

func TestGetAbsentIDIsNotFound(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.Get("404")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestGetReturnsCopy(t *testing.T) {
	db, _ := newTestDB(t, WithGenerator(idgen.NewFixedGenerator("1")))
	mustWrite(t, db, docval.Object{"band": docval.String("Radiohead")})

	doc, err := db.Get("1")
	require.NoError(t, err)
	doc["band"] = docval.String("mutated")

	again, err := db.Get("1")
	require.NoError(t, err)
	assert.True(t, docval.Equal(docval.String("Radiohead"), again["band"]))
}

func TestAllYieldsStorageOrder(t *testing.T) {
	db, _ := newTestDB(t)
	for _, band := range []string{"Radiohead", "Portishead", "Blues"} {
		mustWrite(t, db, docval.Object{"band": docval.String(band)})
	}

	var bands []string
	for doc := range db.All() {
		bands = append(bands, string(doc["band"].(docval.String)))
	}
	assert.Equal(t, []string{"Radiohead", "Portishead", "Blues"}, bands)
}

func TestAllIsLazy(t *testing.T) {
	db, _ := newTestDB(t)
	for i := 0; i < 5; i++ {
		mustWrite(t, db, docval.Object{"n": docval.Number(i)})
	}

	seen := 0
	for range db.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestAllEmptyDatabase(t *testing.T) {
	db, _ := newTestDB(t)
	assert.Empty(t, collect(db.All()))
}

func TestFilterWildcard(t *testing.T) {
	db, _ := newTestDB(t)
	mustWrite(t, db, docval.Object{"band": docval.String("Radiohead")})
	mustWrite(t, db, docval.Object{"band": docval.String("Blues")})

	docs := collect(db.Filter(mustPredicates(t, "band", "Radio*")))
	require.Len(t, docs, 1)
	assert.True(t, docval.Equal(docval.String("Radiohead"), docs[0]["band"]))
}

func TestFilterNestedPath(t *testing.T) {
	db, _ := newTestDB(t)
	mustWrite(t, db, docval.Object{
		"name": docval.Object{"first": docval.String("Thom")},
	})
	mustWrite(t, db, docval.Object{
		"name": docval.Object{"first": docval.String("Jonny")},
	})
	// Document lacking the name field is excluded, not an error.
	mustWrite(t, db, docval.Object{"band": docval.String("Radiohead")})

	docs := collect(db.Filter(mustPredicates(t, "name__first", "Thom")))
	require.Len(t, docs, 1)
}

func TestFilterConjunction(t *testing.T) {
	db, _ := newTestDB(t)
	mustWrite(t, db, docval.Object{
		"band": docval.String("Radiohead"),
		"year": docval.Number(1997),
	})
	mustWrite(t, db, docval.Object{
		"band": docval.String("Radiohead"),
		"year": docval.Number(2000),
	})

	docs := collect(db.Filter(mustPredicates(t, "band", "Radio*", "year", 1997)))
	require.Len(t, docs, 1)
	assert.True(t, docval.Equal(docval.Number(1997), docs[0]["year"]))
}

func TestFilterNumericWildcard(t *testing.T) {
	db, _ := newTestDB(t)
	mustWrite(t, db, docval.Object{"code": docval.Number(5965830)})
	mustWrite(t, db, docval.Object{"code": docval.Number(41)})

	docs := collect(db.Filter(mustPredicates(t, "code", "5*")))
	require.Len(t, docs, 1)
	assert.True(t, docval.Equal(docval.Number(5965830), docs[0]["code"]))
}

func TestFilterSeesRawTimestamps(t *testing.T) {
	db, clock := newTestDB(t)
	clock.Set(812_000_000)
	mustWrite(t, db, docval.Object{"x": docval.Number(1)})

	// Predicates match the stored form: raw epoch seconds.
	docs := collect(db.Filter(mustPredicates(t, "timestamp", 812_000_000)))
	assert.Len(t, docs, 1)
}

func TestFilterNoMatchIsEmptySequence(t *testing.T) {
	db, _ := newTestDB(t)
	mustWrite(t, db, docval.Object{"band": docval.String("Blues")})

	docs := collect(db.Filter(mustPredicates(t, "band", "Radio*")))
	assert.Empty(t, docs)
}

func TestFilterEmptyPredicatesMatchesAll(t *testing.T) {
	db, _ := newTestDB(t)
	mustWrite(t, db, docval.Object{"a": docval.Number(1)})
	mustWrite(t, db, docval.Object{"b": docval.Number(2)})

	assert.Len(t, collect(db.Filter(nil)), 2)
}
