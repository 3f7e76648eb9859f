// Package diskstorage keeps processed files in the local processed directory
// and derives public URLs from the configured base address.
package diskstorage

import (
	"context"
	"os"
	"path/filepath"
)

type DiskStorage struct {
	dir     string
	baseURL string
}

func New(dir, baseURL string) *DiskStorage {
	return &DiskStorage{dir: dir, baseURL: baseURL}
}

// Save is a no-move operation: the codec already wrote the file into the
// processed directory, so only the stored path and URL are derived here.
func (s *DiskStorage) Save(_ context.Context, localPath, filename, _ string) (string, string, error) {
	if _, err := os.Stat(localPath); err != nil {
		return "", "", err
	}
	return localPath, s.baseURL + "/static/" + filename, nil
}

// Remove deletes the processed file. A missing file is not an error - cleanup
// must be idempotent.
func (s *DiskStorage) Remove(_ context.Context, filename string) error {
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
