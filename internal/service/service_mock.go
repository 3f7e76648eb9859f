package service

import (
	"context"

	"github.com/UnendingLoop/ImageGallery/internal/imageproc"
	"github.com/UnendingLoop/ImageGallery/internal/model"
	"github.com/wb-go/wbf/retry"
)

// MOCK REPOSITORY

type mockRepo struct {
	createFn  func(ctx context.Context, img *model.Image) error
	getFn     func(ctx context.Context, id string) (*model.Image, error)
	getListFn func(ctx context.Context, req *model.ListRequest) ([]model.Image, error)
	countFn   func(ctx context.Context, title string) (int, error)
}

func (m *mockRepo) Create(ctx context.Context, img *model.Image) error {
	return m.createFn(ctx, img)
}

func (m *mockRepo) Get(ctx context.Context, id string) (*model.Image, error) {
	return m.getFn(ctx, id)
}

func (m *mockRepo) GetList(ctx context.Context, req *model.ListRequest) ([]model.Image, error) {
	return m.getListFn(ctx, req)
}

func (m *mockRepo) Count(ctx context.Context, title string) (int, error) {
	return m.countFn(ctx, title)
}

// MOCK PROCESSOR

type mockProcessor struct {
	processFn func(inputPath, outputPath string, w, h int) (imageproc.Dimensions, error)
}

func (m *mockProcessor) ProcessAndOptimize(inputPath, outputPath string, w, h int) (imageproc.Dimensions, error) {
	return m.processFn(inputPath, outputPath, w, h)
}

// MOCK FILE STORAGE

type mockFileStorage struct {
	saveFn   func(ctx context.Context, localPath, filename, contentType string) (string, string, error)
	removeFn func(ctx context.Context, filename string) error
}

func (m *mockFileStorage) Save(ctx context.Context, localPath, filename, contentType string) (string, string, error) {
	return m.saveFn(ctx, localPath, filename, contentType)
}

func (m *mockFileStorage) Remove(ctx context.Context, filename string) error {
	return m.removeFn(ctx, filename)
}

// MOCK PUBLISHER

type mockPublisher struct {
	sendFn func(ctx context.Context, s retry.Strategy, key []byte, v []byte) error
}

func (m *mockPublisher) SendWithRetry(ctx context.Context, s retry.Strategy, key []byte, v []byte) error {
	return m.sendFn(ctx, s, key, v)
}
