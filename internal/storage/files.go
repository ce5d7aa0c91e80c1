package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"
)

// FileStore persists uploaded files and returns the public path they will be
// served under.
type FileStore interface {
	Save(userID uint, originalName string, src io.Reader) (string, error)
}

// LocalStore writes uploads to a directory on local disk. The directory is
// served statically under urlPrefix.
type LocalStore struct {
	dir       string
	urlPrefix string
}

// Ensure LocalStore implements FileStore
var _ FileStore = (*LocalStore)(nil)

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: urlPrefix}, nil
}

// Save stores the upload as {userID}-{timestamp}{ext} and returns its public
// path. The original file name contributes only its extension, so caller
// input never influences the directory layout.
func (s *LocalStore) Save(userID uint, originalName string, src io.Reader) (string, error) {
	name := fmt.Sprintf("%d-%d%s", userID, time.Now().UnixMilli(), filepath.Ext(originalName))

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return path.Join(s.urlPrefix, name), nil
}
