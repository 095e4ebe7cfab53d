package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tetherdb/tether/docval"
)

// encodeDatabase serializes the mapping as a single JSON object. Top-level
// keys come out in insertion order so a reload scans documents in the same
// order they were written; nested objects use canonical key order. Given
// the same history the file bytes are identical.
func encodeDatabase(ids []string, docs map[string]docval.Object) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, id := range ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(id)
		if err != nil {
			return nil, fmt.Errorf("marshal id %q: %w", id, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		doc, ok := docs[id]
		if !ok {
			return nil, fmt.Errorf("id %q in order list but not in mapping", id)
		}
		docBytes, err := docval.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("marshal document %q: %w", id, err)
		}
		buf.Write(docBytes)
	}

	buf.WriteByte('}')
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// decodeDatabase parses the backing file, preserving top-level key order.
// encoding/json's map decoding would lose it, so keys are walked with a
// token decoder and each value decoded in place.
func decodeDatabase(data []byte) ([]string, map[string]docval.Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("read opening token: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("backing file is not a JSON object")
	}

	var ids []string
	docs := make(map[string]docval.Object)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("read document id: %w", err)
		}
		id, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("document id is not a string: %v", tok)
		}

		var doc docval.Object
		if err := dec.Decode(&doc); err != nil {
			return nil, nil, fmt.Errorf("decode document %q: %w", id, err)
		}

		if _, dup := docs[id]; dup {
			return nil, nil, fmt.Errorf("duplicate document id %q", id)
		}
		ids = append(ids, id)
		docs[id] = doc
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("read closing token: %w", err)
	}

	return ids, docs, nil
}
