package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetherdb/tether/docval"
	"github.com/tetherdb/tether/idgen"
)

func TestDeleteRemovesOne(t *testing.T) {
	db, _ := newTestDB(t, WithGenerator(idgen.NewFixedGenerator("1", "2")))
	mustWrite(t, db, docval.Object{"keep": docval.Bool(false)})
	mustWrite(t, db, docval.Object{"keep": docval.Bool(true)})

	n, err := db.Delete("1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, db.Len())

	_, err = db.Get("1")
	assert.True(t, IsNotFound(err))
	_, err = db.Get("2")
	assert.NoError(t, err)
}

func TestDeleteAbsentIDIsNotFound(t *testing.T) {
	db, _ := newTestDB(t)

	n, err := db.Delete("404")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, 0, n)
}

func TestDeletePersists(t *testing.T) {
	db, _ := newTestDB(t, WithGenerator(idgen.NewFixedGenerator("1", "2")))
	mustWrite(t, db, docval.Object{"a": docval.Number(1)})
	mustWrite(t, db, docval.Object{"b": docval.Number(2)})

	_, err := db.Delete("1")
	require.NoError(t, err)

	again, err := Open(db.Path())
	require.NoError(t, err)
	assert.Equal(t, 1, again.Len())
}

func TestDeleteAll(t *testing.T) {
	db, _ := newTestDB(t)
	for i := 0; i < 4; i++ {
		mustWrite(t, db, docval.Object{"n": docval.Number(i)})
	}

	n, err := db.DeleteAll()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 0, db.Len())

	again, err := Open(db.Path())
	require.NoError(t, err)
	assert.Equal(t, 0, again.Len())
}

func TestDeleteAllEmptyDatabase(t *testing.T) {
	db, _ := newTestDB(t)

	n, err := db.DeleteAll()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
