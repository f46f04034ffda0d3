// Package repo implements the entity repositories. Each repository
// owns its in-memory collection exclusively, loads it once from the
// snapshot store at construction and writes the whole snapshot back
// after every mutation. Concurrent writes follow last-write-wins at
// the store level; a per-repository mutex keeps the in-process slices
// consistent.
package repo

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when an id does not resolve in a collection.
var ErrNotFound = errors.New("not found")

func encodeAll[T any](items []T) ([]json.RawMessage, error) {
	docs := make([]json.RawMessage, 0, len(items))
	for i := range items {
		data, err := json.Marshal(items[i])
		if err != nil {
			return nil, fmt.Errorf("encode entity: %w", err)
		}
		docs = append(docs, data)
	}
	return docs, nil
}

func decodeAll[T any](docs []json.RawMessage) ([]T, error) {
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := json.Unmarshal(doc, &item); err != nil {
			return nil, fmt.Errorf("decode entity: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

// merge applies shallow-merge update semantics: fields present in the
// patch overwrite, absent fields are retained. There is deliberately
// no way to clear a field back to its zero value through a patch.
// The patch is applied to a deep copy; a plain struct assignment would
// share slice backing arrays with the stored entity, and unmarshalling
// over it would mutate the stored slices in place.
func merge[T any](existing T, patch []byte) (T, error) {
	snapshot, err := json.Marshal(existing)
	if err != nil {
		return existing, fmt.Errorf("snapshot entity: %w", err)
	}
	var merged T
	if err := json.Unmarshal(snapshot, &merged); err != nil {
		return existing, fmt.Errorf("snapshot entity: %w", err)
	}
	if err := json.Unmarshal(patch, &merged); err != nil {
		return existing, fmt.Errorf("apply patch: %w", err)
	}
	return merged, nil
}
