package service

import (
	"path/filepath"
	"strings"

	"github.com/UnendingLoop/ImageGallery/internal/model"
)

func validateCreateData(in *model.ImageCreateData) error {
	if strings.TrimSpace(in.Title) == "" {
		return model.ErrValidation
	}
	if in.Width <= 0 || in.Height <= 0 {
		return model.ErrValidation
	}
	if in.TmpPath == "" || in.TmpFilename == "" {
		return model.ErrEmptySource
	}
	return nil
}

func validateQueryParams(req *model.ListRequest) error {
	if req.Page < 1 {
		return model.ErrIncorrectQuery
	}
	if req.Limit < 1 || req.Limit > model.MaxLimit {
		return model.ErrIncorrectQuery
	}
	req.Title = strings.TrimSpace(req.Title)
	return nil
}

// contentTypeForFilename derives the stored content-type from the processed
// filename extension. Webp never appears here - it was mapped to .jpg at
// intake.
func contentTypeForFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return model.PNG
	case ".gif":
		return model.GIF
	default:
		return model.JPEG
	}
}
