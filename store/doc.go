// Package store implements the document database: an in-memory mapping
// from ID to document, backed by exactly one JSON file.
//
// Persistence model: every mutating operation rewrites the whole backing
// file. Commit cost is therefore O(n) in total stored bytes. That is an
// intentional trade-off for small document counts on flash-constrained
// devices, not an accident to optimize away later. The write itself goes
// through a temp file and an atomic rename; on filesystems without atomic
// rename, partial-write corruption is a recognized limitation.
//
// Load policy: the mapping is parsed once at Open and cached for the life
// of the DB. Reads and length queries never touch the file again.
//
// Concurrency contract: a DB owns its mapping and has no internal locking.
// Callers invoking one DB from multiple goroutines must serialize access
// themselves. Two DB values pointed at the same file - in one process or
// two - are not coordinated at all: no file locking, no last-writer
// detection. External mutation of the file while a DB holds cached state
// is undefined behavior.
package store
