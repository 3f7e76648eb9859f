// Package storage abstracts where processed files live: the local processed
// directory served under /static, or a MinIO bucket fronted by its own
// public endpoint.
package storage

import (
	"context"
	"log"
	"time"

	"github.com/UnendingLoop/ImageGallery/internal/config"
	"github.com/UnendingLoop/ImageGallery/internal/storage/diskstorage"
	"github.com/UnendingLoop/ImageGallery/internal/storage/miniostorage"
)

// FileStorage - contract the pipeline uses to persist a processed file.
// Save takes the codec output at localPath and returns the stored path (disk
// path or object key) plus the public URL of the file.
type FileStorage interface {
	Save(ctx context.Context, localPath, filename, contentType string) (storedPath, publicURL string, err error)
	Remove(ctx context.Context, filename string) error
}

// NewFileStorage picks the backend from config. MinIO connection errors are
// retried forever - the app is useless without its storage anyway.
func NewFileStorage(cfg *config.Config, delay time.Duration) FileStorage {
	if cfg.StorageBackend != config.BackendMinio {
		return diskstorage.New(cfg.ProcessedDir, cfg.AppURL)
	}

	for {
		log.Println("Connecting to IMG-storage...")
		client, err := miniostorage.New(cfg)
		if err != nil {
			log.Printf("Failed to init connection to IMG-storage: %v\nNext retry in %v...", err, delay)
			time.Sleep(delay)
			continue
		}
		log.Println("Successfully connected IMG-storage!")
		return client
	}
}
