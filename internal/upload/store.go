package upload

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store keeps processed profile pictures on local disk under a single
// directory, one flat namespace of generated filenames.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Save writes JPEG data under a freshly generated unique filename and
// returns the filename.
func (s *Store) Save(userID uint, data []byte) (string, error) {
	id := uuid.New()
	filename := fmt.Sprintf("user_%d_%s.jpg", userID, hex.EncodeToString(id[:]))
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}

// Remove deletes a stored file best-effort. Callers never depend on the
// outcome.
func (s *Store) Remove(filename string) {
	if filename == "" {
		return
	}
	os.Remove(filepath.Join(s.dir, filepath.Base(filename)))
}

// Path resolves a stored filename to its on-disk path. The Base call keeps
// traversal out of requested names.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filepath.Base(filename))
}
