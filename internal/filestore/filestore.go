package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store keeps uploaded originals on local disk, one file per document id,
// named "{documentID}{ext}". The original filename lives in chunk metadata,
// not here.
type Store struct {
	dir string
}

// New creates the upload directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Save writes data under the document id with the given extension and
// returns the stored path.
func (s *Store) Save(documentID, ext string, data []byte) (string, error) {
	path := s.Path(documentID, ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

// Path returns the storage path for a document id and extension.
func (s *Store) Path(documentID, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return filepath.Join(s.dir, documentID+ext)
}

// Find returns the stored path for a document id, whatever its extension,
// or "" when no file is stored.
func (s *Store) Find(documentID string) string {
	matches, err := filepath.Glob(filepath.Join(s.dir, documentID+".*"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	return matches[0]
}

// Remove deletes the stored original for a document id, if any. Removing a
// document that was never stored is not an error.
func (s *Store) Remove(documentID string) error {
	path := s.Find(documentID)
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
