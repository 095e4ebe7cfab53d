package store

import (
	"github.com/tetherdb/tether/docval"
)

// WriteOption configures a single write.
type WriteOption func(*writeOptions)

type writeOptions struct {
	skipDeviceID bool
}

// WithoutDeviceID suppresses device_id injection for this write.
func WithoutDeviceID() WriteOption {
	return func(o *writeOptions) { o.skipDeviceID = true }
}

// Write assigns a fresh unique ID to the document, attaches timestamp and
// (unless suppressed or unconfigured) device_id, inserts it and commits.
// The document is cloned before reserved fields are added, so the caller's
// value is never mutated.
//
// Fails with a validation error if the document is nil or already carries
// a reserved field.
func (db *DB) Write(doc docval.Object, opts ...WriteOption) error {
	var o writeOptions
	for _, opt := range opts {
		opt(&o)
	}

	if doc == nil {
		return validationError("document must be an object")
	}
	for _, reserved := range []string{FieldID, FieldTimestamp, FieldDeviceID} {
		if _, clash := doc[reserved]; clash {
			return validationError("document field %q is reserved", reserved)
		}
	}

	id, err := db.gen.Generate(db.has)
	if err != nil {
		return idGenerationError(err)
	}

	stored := doc.Clone()
	stored[FieldID] = docval.String(id)
	stored[FieldTimestamp] = docval.Number(db.clock.Now())
	if !o.skipDeviceID && db.deviceID != "" {
		stored[FieldDeviceID] = docval.String(db.deviceID)
	}

	db.ids = append(db.ids, id)
	db.docs[id] = stored

	if err := db.commit(); err != nil {
		// Keep the mapping equal to the file.
		db.ids = db.ids[:len(db.ids)-1]
		delete(db.docs, id)
		return err
	}

	db.logger.Info("document written", "id", id, "documents", len(db.ids))
	return nil
}

// WriteValue is Write for callers holding an arbitrary decoded value, such
// as the CLI and the decorator wrapper. A non-object value fails
// validation.
func (db *DB) WriteValue(v docval.Value, opts ...WriteOption) error {
	doc, ok := v.(docval.Object)
	if !ok {
		return validationError("document must be an object, got %T", v)
	}
	return db.Write(doc, opts...)
}
