// Package upload gates incoming files before any processing resources are
// committed and stages accepted uploads in the temp directory under a
// generated unique name. The generated name is reused verbatim as the
// processed filename further down the pipeline.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/UnendingLoop/ImageGallery/internal/model"
	"github.com/google/uuid"
)

// Validate checks the declared content-type and byte size of an upload.
// The size check is reported first when both would fail - the transport
// already rejects by size, so the type error would be misleading.
func Validate(contentType string, size int64, maxSize int64) error {
	if size <= 0 {
		return model.ErrEmptySource
	}
	if size > maxSize {
		return model.ErrPayloadTooLarge
	}
	if !model.InImageTypeMap[contentType] {
		return model.ErrUnsupportedMedia
	}
	return nil
}

type TempSaver struct {
	Dir string
}

func NewTempSaver(dir string) *TempSaver {
	return &TempSaver{Dir: dir}
}

// SaveTemp streams the upload to disk under "<uuid><ext>" where the extension
// is derived from the content-type. Returns the full path and the bare
// filename. On a partial write the temp file is removed before returning.
func (s *TempSaver) SaveTemp(file multipart.File, contentType string) (string, string, error) {
	filename := uuid.New().String() + model.GetImageFileExt[contentType]
	path := filepath.Join(s.Dir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(dst, file); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", "", fmt.Errorf("write temp file: %w", err)
	}

	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", "", fmt.Errorf("close temp file: %w", err)
	}

	return path, filename, nil
}
