// Package docval defines the closed value domain for stored documents.
//
// Every field of a document is one of six tagged kinds: Null, Bool, Number,
// String, Array or Object. The set is sealed - matching and serialization
// dispatch explicitly on the kind, never on reflection over arbitrary Go
// values. This keeps equality, prefix matching and on-disk encoding
// deterministic, which matters because the store rewrites its whole backing
// file on every mutation and identical state must produce identical bytes.
package docval
