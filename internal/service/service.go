// Package service provides business-logic for the app
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/UnendingLoop/ImageGallery/internal/events"
	"github.com/UnendingLoop/ImageGallery/internal/imageproc"
	"github.com/UnendingLoop/ImageGallery/internal/model"
	"github.com/UnendingLoop/ImageGallery/internal/mwlogger"
	"github.com/UnendingLoop/ImageGallery/internal/repository"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
)

type ImageService struct {
	repo         repository.ImageRepo
	processor    Processor
	files        FileStorage
	publisher    events.Publisher
	processedDir string
}

func NewImageService(repo repository.ImageRepo, proc Processor, files FileStorage, pub events.Publisher, processedDir string) *ImageService {
	return &ImageService{
		repo:         repo,
		processor:    proc,
		files:        files,
		publisher:    pub,
		processedDir: processedDir,
	}
}

// Processor - contract of the codec adapter
type Processor interface {
	ProcessAndOptimize(inputPath, outputPath string, targetWidth, targetHeight int) (imageproc.Dimensions, error)
}

// FileStorage - contract of the processed-file storage backend
type FileStorage interface {
	Save(ctx context.Context, localPath, filename, contentType string) (storedPath, publicURL string, err error)
	Remove(ctx context.Context, filename string) error
}

// Retry strategy for publishing events to the queue
var retryStrategy = retry.Strategy{
	Attempts: 5,
	Delay:    3 * time.Second,
	Backoff:  1.5,
}

// CreateImage runs the whole upload pipeline: resize/optimize the temp file
// into the processed area, drop the temp source, persist the processed file
// and finally write the metadata row. Any failure cleans up both the temp
// and the partially-written destination before propagating; the row is only
// written after the file is durably stored, so the store never holds an
// orphan record.
func (c ImageService) CreateImage(ctx context.Context, in *model.ImageCreateData) (*model.Image, error) {
	logger := mwlogger.LoggerFromContext(ctx)

	if err := validateCreateData(in); err != nil {
		return nil, err
	}

	// the filename generated at intake is reused verbatim
	processedPath := filepath.Join(c.processedDir, in.TmpFilename)

	start := time.Now()
	dims, err := c.processor.ProcessAndOptimize(in.TmpPath, processedPath, in.Width, in.Height)
	if err != nil {
		logger.Error().Err(err).Msg(fmt.Sprintf("Failed to process image %q", in.TmpFilename))
		c.cleanupFiles(ctx, in.TmpPath, processedPath)
		return nil, fmt.Errorf("%w: %s", model.ErrProcessingFailed, err)
	}

	// source is consumed - its absence from here on is not an error
	c.cleanupFiles(ctx, in.TmpPath)

	logger.Info().
		Str("filename", in.TmpFilename).
		Int("width", dims.Width).
		Int("height", dims.Height).
		Dur("took", time.Since(start)).
		Msg("Image processed")

	storedPath, url, err := c.files.Save(ctx, processedPath, in.TmpFilename, contentTypeForFilename(in.TmpFilename))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to persist processed file in storage")
		c.cleanupFiles(ctx, processedPath)
		return nil, fmt.Errorf("%w: %s", model.ErrProcessingFailed, err)
	}

	now := time.Now().UTC()
	newImage := &model.Image{
		ID:        uuid.New(),
		Title:     in.Title,
		Path:      storedPath,
		URL:       url,
		Width:     dims.Width,
		Height:    dims.Height,
		CreatedAt: &now,
		UpdatedAt: &now,
	}

	if err := c.repo.Create(ctx, newImage); err != nil {
		logger.Error().Err(err).Msg("Failed to create image in DB")
		if err := c.files.Remove(ctx, in.TmpFilename); err != nil {
			logger.Warn().Err(err).Msg("Failed to remove processed file after DB error")
		}
		return nil, fmt.Errorf("%w: %s", model.ErrProcessingFailed, err)
	}

	c.publishCreated(ctx, newImage)

	return newImage, nil
}

// GetList returns one page of records newest-first plus pagination meta.
// Page and limit are echoed back as given, pages = ceil(count/limit).
func (c ImageService) GetList(ctx context.Context, req *model.ListRequest) (*model.ImageList, error) {
	logger := mwlogger.LoggerFromContext(ctx)

	if err := validateQueryParams(req); err != nil {
		return nil, err
	}

	images, err := c.repo.GetList(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch images list from DB")
		return nil, model.ErrCommon500
	}

	count, err := c.repo.Count(ctx, req.Title)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to count images in DB")
		return nil, model.ErrCommon500
	}

	return &model.ImageList{
		Images: images,
		Count:  count,
		Page:   req.Page,
		Limit:  req.Limit,
		Pages:  (count + req.Limit - 1) / req.Limit,
	}, nil
}

func (c ImageService) Get(ctx context.Context, id string) (*model.Image, error) {
	logger := mwlogger.LoggerFromContext(ctx)
	if err := uuid.Validate(id); err != nil {
		return nil, model.ErrIncorrectID
	}

	res, err := c.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrImageNotFound) {
			return nil, model.ErrImageNotFound
		}
		logger.Error().Err(err).Msg(fmt.Sprintf("Failed to fetch image %q from DB", id))
		return nil, model.ErrCommon500
	}

	return res, nil
}

// cleanupFiles removes whatever of the given paths still exists. Failures
// are logged and swallowed - the file may never have been created or may
// already be gone, and cleanup must be idempotent.
func (c ImageService) cleanupFiles(ctx context.Context, paths ...string) {
	logger := mwlogger.LoggerFromContext(ctx)
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn().Err(err).Msg(fmt.Sprintf("Failed to clean up file %q", path))
		}
	}
}

func (c ImageService) publishCreated(ctx context.Context, img *model.Image) {
	logger := mwlogger.LoggerFromContext(ctx)

	key, payload, err := events.EncodeImageCreated(img)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to encode image-created event")
		return
	}

	if err := c.publisher.SendWithRetry(ctx, retryStrategy, key, payload); err != nil {
		logger.Error().Err(err).Msg(fmt.Sprintf("Failed to publish image-created event for %q", img.ID))
	}
}
