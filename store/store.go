package store

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tetherdb/tether/docval"
	"github.com/tetherdb/tether/epoch"
	"github.com/tetherdb/tether/idgen"
)

// Reserved field names injected by the store. A caller document carrying
// any of them fails validation rather than being silently overwritten.
const (
	FieldID        = "id"
	FieldTimestamp = "timestamp"
	FieldDeviceID  = "device_id"
)

// DB is one backing file plus its cached in-memory document mapping.
type DB struct {
	path string

	deviceID       string
	offsetMinutes  int
	cleanupSeconds int64

	clock  epoch.Clock
	gen    idgen.Generator
	logger *slog.Logger

	// ids preserves insertion order for full scans; docs holds the stored
	// form of each document, reserved fields included.
	ids  []string
	docs map[string]docval.Object
}

// Option configures a DB at Open time.
type Option func(*DB)

// WithDeviceID sets the identifier injected into new documents. The
// default is empty, which disables injection; callers wanting the
// platform-derived default pass it in explicitly (see the config package).
func WithDeviceID(id string) Option {
	return func(db *DB) { db.deviceID = id }
}

// WithUTCOffsetMinutes sets the fixed offset, in signed minutes, applied
// when rendering timestamps. Parse "±HH:MM" strings with epoch.ParseOffset.
func WithUTCOffsetMinutes(minutes int) Option {
	return func(db *DB) { db.offsetMinutes = minutes }
}

// WithCleanupSeconds sets the default retention horizon used when Cleanup
// is invoked without an explicit one.
func WithCleanupSeconds(seconds int64) Option {
	return func(db *DB) { db.cleanupSeconds = seconds }
}

// WithClock replaces the wall clock. Tests pin time with an
// epoch.ManualClock instead of sleeping.
func WithClock(c epoch.Clock) Option {
	return func(db *DB) { db.clock = c }
}

// WithGenerator replaces the ID generation strategy.
func WithGenerator(g idgen.Generator) Option {
	return func(db *DB) { db.gen = g }
}

// WithLogger sets the structured logger. Default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(db *DB) { db.logger = l }
}

// Open loads the database at path. A missing file is an empty database,
// not an error; a present but unparsable file, or an absent parent
// directory, is a storage error.
func Open(path string, opts ...Option) (*DB, error) {
	db := &DB{
		path:   path,
		clock:  epoch.SystemClock{},
		gen:    idgen.RandomGenerator{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		docs:   make(map[string]docval.Object),
	}
	for _, opt := range opts {
		opt(db)
	}

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return nil, storageError("parent directory absent", err)
	}

	if err := db.load(); err != nil {
		return nil, err
	}

	db.logger.Debug("database opened", "path", path, "documents", len(db.ids))
	return db, nil
}

// Path returns the backing file path.
func (db *DB) Path() string {
	return db.path
}

// Len returns the current document count without touching the file.
func (db *DB) Len() int {
	return len(db.ids)
}

// load parses the backing file into the cached mapping.
func (db *DB) load() error {
	data, err := os.ReadFile(db.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return storageError("read backing file", err)
	}

	ids, docs, err := decodeDatabase(data)
	if err != nil {
		return storageError("backing file is corrupt", err)
	}

	db.ids = ids
	db.docs = docs
	return nil
}

// commit serializes the full mapping and replaces the backing file via
// write-to-temp-then-rename, the most atomic primitive the platform gives
// us. On filesystems where rename is not atomic this degrades to a
// documented limitation, not a partial mitigation.
func (db *DB) commit() error {
	data, err := encodeDatabase(db.ids, db.docs)
	if err != nil {
		return storageError("serialize database", err)
	}

	dir := filepath.Dir(db.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(db.path)+".tmp*")
	if err != nil {
		return storageError("create temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return storageError("write temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return storageError("sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return storageError("close temp file", err)
	}

	if err := os.Rename(tmpName, db.path); err != nil {
		os.Remove(tmpName)
		return storageError("replace backing file", err)
	}

	db.logCommit(data)
	return nil
}

// logCommit records a canonical fingerprint of the committed state at
// Debug level. Skipped entirely unless Debug is enabled - fingerprinting
// hashes the whole database.
func (db *DB) logCommit(data []byte) {
	if !db.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	state := make(docval.Object, len(db.docs))
	for id, doc := range db.docs {
		state[id] = doc
	}
	fp, err := docval.Fingerprint(state)
	if err != nil {
		db.logger.Debug("commit", "documents", len(db.ids), "bytes", len(data))
		return
	}
	db.logger.Debug("commit", "documents", len(db.ids), "bytes", len(data), "fingerprint", fp)
}

// has reports whether an ID is currently stored.
func (db *DB) has(id string) bool {
	_, ok := db.docs[id]
	return ok
}
