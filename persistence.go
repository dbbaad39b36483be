package canvas

import (
	"fmt"
	"os"
	"path/filepath"
)

// DocumentStore is the workspace persistence contract a host implements:
// load and save a document's JSON schema v1 bytes under some workspace-
// scoped key (a file path, a blob name, whatever the host's storage is).
type DocumentStore interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// FileDocumentStore is a reference DocumentStore writing schema v1 JSON to
// the local filesystem. Grounded on debug.go's writePNG: create, write,
// close, except writes go through a temp file and rename so a save that
// fails partway never corrupts the existing file.
type FileDocumentStore struct {
	Dir string
}

// NewFileDocumentStore binds a store to dir, creating it if necessary.
func NewFileDocumentStore(dir string) (*FileDocumentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("document store: mkdir %s: %w", dir, err)
	}
	return &FileDocumentStore{Dir: dir}, nil
}

func (s *FileDocumentStore) path(key string) string {
	return filepath.Join(s.Dir, key+".json")
}

// Load reads key's JSON bytes.
func (s *FileDocumentStore) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("document store: load %s: %w", key, err)
	}
	return data, nil
}

// Save atomically replaces key's JSON bytes: write to a temp file in the
// same directory, then rename over the target so readers never observe a
// partially written file.
func (s *FileDocumentStore) Save(key string, data []byte) error {
	target := s.path(key)
	tmp := target + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("document store: create %s: %w", tmp, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("document store: write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("document store: close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("document store: rename %s -> %s: %w", tmp, target, err)
	}
	return nil
}

// SaveDocument serializes doc/view to schema v1 JSON and writes it to store
// under key.
func SaveDocument(store DocumentStore, key string, doc *Document, view *ViewState) error {
	data, err := MarshalJSON(doc, view)
	if err != nil {
		return fmt.Errorf("save document %s: %w", key, err)
	}
	return store.Save(key, data)
}

// LoadDocument reads key's schema v1 JSON from store and deserializes it
// into doc/view.
func LoadDocument(store DocumentStore, key string, doc *Document, view *ViewState) error {
	data, err := store.Load(key)
	if err != nil {
		return err
	}
	if err := UnmarshalJSON(data, doc, view); err != nil {
		return fmt.Errorf("load document %s: %w", key, err)
	}
	return nil
}
