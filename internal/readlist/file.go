package readlist

import (
	"os"
	"path/filepath"
)

// FileBlob persists the read list as a single YAML file, written atomically
// through a temp file and rename so a crashed write never truncates the
// list.
type FileBlob struct {
	path string
}

// NewFileBlob creates a FileBlob at the given path. The file and its parent
// directory are created on first write.
func NewFileBlob(path string) *FileBlob {
	return &FileBlob{path: path}
}

// Read returns the stored bytes, or nil when the file does not exist yet.
func (b *FileBlob) Read() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Write replaces the stored bytes wholesale.
func (b *FileBlob) Write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0755); err != nil {
		return err
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, b.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// DefaultPath returns the default read-list location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "openshelf", "readlist.yml")
}
