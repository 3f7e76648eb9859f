package main

import (
	"context"

	"github.com/UnendingLoop/ImageGallery/internal/model"
)

type ImageAPIRepository interface {
	Create(ctx context.Context, n *model.Image) error
	Get(ctx context.Context, id string) (*model.Image, error)
	GetList(ctx context.Context, req *model.ListRequest) ([]model.Image, error)
	Count(ctx context.Context, title string) (int, error)
}

type ImageAPIService interface {
	CreateImage(ctx context.Context, in *model.ImageCreateData) (*model.Image, error)
	Get(ctx context.Context, id string) (*model.Image, error)
	GetList(ctx context.Context, req *model.ListRequest) (*model.ImageList, error)
}
