// Package export dumps a database into a SQLite file.
//
// The backing store is a single JSON file; this one-shot export exists so a
// database pulled off a device can be poked at with ordinary SQL tooling.
// It is strictly read-only with respect to the source.
package export

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tetherdb/tether/docval"
	"github.com/tetherdb/tether/store"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	id        TEXT PRIMARY KEY,
	timestamp INTEGER,
	device_id TEXT,
	body      TEXT NOT NULL
);
`

// ToSQLite writes every document into a documents table at path, replacing
// rows that share an ID with a previous export. body holds the full stored
// document as JSON; id, timestamp and device_id are split out as columns
// for indexing and WHERE clauses. Returns the number of rows written.
func ToSQLite(src *store.DB, path string) (int, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return 0, fmt.Errorf("open sqlite database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return 0, fmt.Errorf("connect to sqlite database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return 0, fmt.Errorf("apply schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin export transaction: %w", err)
	}
	defer tx.Rollback() // no-op if committed

	stmt, err := tx.Prepare(`
		INSERT INTO documents (id, timestamp, device_id, body)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			timestamp = excluded.timestamp,
			device_id = excluded.device_id,
			body      = excluded.body
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for doc := range src.All(store.WithRawTimestamp()) {
		id, ok := doc[store.FieldID].(docval.String)
		if !ok {
			return 0, fmt.Errorf("document missing string id")
		}

		var timestamp any
		if ts, ok := doc[store.FieldTimestamp].(docval.Number); ok {
			timestamp = int64(ts)
		}

		var deviceID any
		if dev, ok := doc[store.FieldDeviceID].(docval.String); ok {
			deviceID = string(dev)
		}

		body, err := docval.Marshal(doc)
		if err != nil {
			return 0, fmt.Errorf("marshal document %q: %w", id, err)
		}

		if _, err := stmt.Exec(string(id), timestamp, deviceID, string(body)); err != nil {
			return 0, fmt.Errorf("insert document %q: %w", id, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit export: %w", err)
	}

	return count, nil
}
