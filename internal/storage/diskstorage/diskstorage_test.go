package diskstorage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiskStorage_Save(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, "http://localhost:3000")

	path := filepath.Join(dir, "abc.jpg")
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))

	storedPath, url, err := s.Save(context.Background(), path, "abc.jpg", "image/jpeg")
	require.NoError(t, err)
	require.Equal(t, path, storedPath)
	require.Equal(t, "http://localhost:3000/static/abc.jpg", url)
}

func TestDiskStorage_Save_MissingFile(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, "http://localhost:3000")

	_, _, err := s.Save(context.Background(), filepath.Join(dir, "ghost.jpg"), "ghost.jpg", "image/jpeg")
	require.Error(t, err)
}

func TestDiskStorage_Remove_Idempotent(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, "http://localhost:3000")

	path := filepath.Join(dir, "abc.jpg")
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))

	require.NoError(t, s.Remove(context.Background(), "abc.jpg"))
	// second removal of an already-gone file must not fail
	require.NoError(t, s.Remove(context.Background(), "abc.jpg"))
}
