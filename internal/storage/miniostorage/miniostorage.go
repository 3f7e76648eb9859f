// Package miniostorage uploads processed files to a MinIO bucket; the local
// codec output is dropped once the object is stored.
package miniostorage

import (
	"context"
	"log"
	"os"

	"github.com/UnendingLoop/ImageGallery/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStorage struct {
	bucket    string
	publicURL string
	client    *minio.Client
}

func New(cfg *config.Config) (*MinioStorage, error) {
	bucket := cfg.MinioBucket
	if bucket == "" {
		bucket = "images"
		log.Printf("Bucket name is empty. Using default value %q...", bucket)
	}

	client, err := minio.New(cfg.MinioAddr, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioUser, cfg.MinioPass, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}

	if err := ensureBucket(context.Background(), client, bucket); err != nil {
		log.Println("Failed to create bucket in MinIO:", err)
		return nil, err
	}

	publicURL := cfg.MinioPublicURL
	if publicURL == "" {
		publicURL = "http://" + cfg.MinioAddr
	}

	return &MinioStorage{bucket: bucket, publicURL: publicURL, client: client}, nil
}

// Save streams the processed file into the bucket under its filename and
// removes the local copy. The object key doubles as the stored path.
func (s *MinioStorage) Save(ctx context.Context, localPath, filename, contentType string) (string, string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", "", err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Println("Failed to close processed file after upload:", err)
		}
	}()

	stat, err := f.Stat()
	if err != nil {
		return "", "", err
	}

	if _, err := s.client.PutObject(ctx, s.bucket, filename, f, stat.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", "", err
	}

	if err := os.Remove(localPath); err != nil {
		log.Println("Failed to drop local copy after upload to MinIO:", err)
	}

	return filename, s.publicURL + "/" + s.bucket + "/" + filename, nil
}

func (s *MinioStorage) Remove(ctx context.Context, filename string) error {
	return s.client.RemoveObject(ctx, s.bucket, filename, minio.RemoveObjectOptions{})
}

func ensureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	return client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
}
