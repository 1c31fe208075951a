package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// File keeps each snapshot as a JSON file named after its key inside a
// directory.
type File struct {
	dir string
}

var _ Store = (*File)(nil)

// NewFile returns a file-backed store rooted at dir, creating it if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("store: ensure dir %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *File) Load(key string) ([]byte, bool, error) {
	bs, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: load %q: %w", key, err)
	}
	return bs, true, nil
}

func (f *File) Save(key string, data []byte) error {
	if err := os.WriteFile(f.path(key), data, 0660); err != nil {
		return fmt.Errorf("store: save %q: %w", key, err)
	}
	return nil
}

func (f *File) Close() error {
	return nil
}
