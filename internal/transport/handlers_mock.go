package transport

import (
	"context"
	"mime/multipart"

	"github.com/UnendingLoop/ImageGallery/internal/model"
	"github.com/gin-gonic/gin"
)

type mockImageService struct {
	createFn  func(ctx context.Context, in *model.ImageCreateData) (*model.Image, error)
	getFn     func(ctx context.Context, id string) (*model.Image, error)
	getListFn func(ctx context.Context, req *model.ListRequest) (*model.ImageList, error)
}

func (m *mockImageService) CreateImage(ctx context.Context, in *model.ImageCreateData) (*model.Image, error) {
	return m.createFn(ctx, in)
}

func (m *mockImageService) Get(ctx context.Context, id string) (*model.Image, error) {
	return m.getFn(ctx, id)
}

func (m *mockImageService) GetList(ctx context.Context, req *model.ListRequest) (*model.ImageList, error) {
	return m.getListFn(ctx, req)
}

type mockTempSaver struct {
	saveFn func(file multipart.File, contentType string) (string, string, error)
}

func (m *mockTempSaver) SaveTemp(file multipart.File, contentType string) (string, string, error) {
	if m.saveFn != nil {
		return m.saveFn(file, contentType)
	}
	return "/tmp/abc.jpg", "abc.jpg", nil
}

func init() {
	gin.SetMode(gin.TestMode)
}
