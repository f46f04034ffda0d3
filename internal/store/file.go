package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File stores each collection as a pretty-printed JSON array in
// <dir>/<collection>.json. Writes are whole-file and not atomic: a
// crash mid-write can truncate the snapshot. That is the documented
// contract of this backend; the SQL backend is the crash-safe option.
type File struct {
	dir string
}

// NewFile creates the data directory if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(collection string) string {
	return filepath.Join(f.dir, collection+".json")
}

func (f *File) Load(_ context.Context, collection string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(f.path(collection))
	if os.IsNotExist(err) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s snapshot: %w", collection, err)
	}
	var docs []json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode %s snapshot: %w", collection, err)
	}
	return docs, nil
}

func (f *File) Save(_ context.Context, collection string, docs []json.RawMessage) error {
	if docs == nil {
		docs = []json.RawMessage{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s snapshot: %w", collection, err)
	}
	if err := os.WriteFile(f.path(collection), data, 0o644); err != nil {
		return fmt.Errorf("write %s snapshot: %w", collection, err)
	}
	return nil
}

func (f *File) Close() error { return nil }
