// Package transport provides methods for processing requests from endpoints
package transport

import (
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/UnendingLoop/ImageGallery/internal/model"
	"github.com/UnendingLoop/ImageGallery/internal/upload"
	"github.com/wb-go/wbf/ginext"
)

type ImageHandler struct {
	service      ImageService
	saver        TempSaver
	maxFileSize  int64
	processedDir string
}

type ImageService interface {
	CreateImage(ctx context.Context, in *model.ImageCreateData) (*model.Image, error)
	Get(ctx context.Context, id string) (*model.Image, error)
	GetList(ctx context.Context, req *model.ListRequest) (*model.ImageList, error)
}

// TempSaver - stages an accepted upload on disk under a generated name
type TempSaver interface {
	SaveTemp(file multipart.File, contentType string) (path, filename string, err error)
}

func NewImageHandler(svc ImageService, saver TempSaver, maxFileSize int64, processedDir string) *ImageHandler {
	return &ImageHandler{
		service:      svc,
		saver:        saver,
		maxFileSize:  maxFileSize,
		processedDir: processedDir,
	}
}

func (h ImageHandler) SimplePinger(ctx *ginext.Context) {
	ctx.JSON(200, map[string]string{"message": "pong"})
}

// Create - POST /images: multipart form with file, title, width, height.
// The validator gate runs before the upload touches disk.
func (h ImageHandler) Create(ctx *ginext.Context) {
	title := strings.TrimSpace(ctx.PostForm("title"))
	width, errW := parsePositiveInt(ctx.PostForm("width"))
	height, errH := parsePositiveInt(ctx.PostForm("height"))
	if title == "" || errW != nil || errH != nil {
		ctx.JSON(400, map[string]string{"error": model.ErrValidation.Error()})
		return
	}

	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		ctx.JSON(400, map[string]string{"error": "file is required"})
		return
	}
	defer closeFileFlow(file)

	contentType := header.Header.Get("Content-Type")
	if err := upload.Validate(contentType, header.Size, h.maxFileSize); err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	tmpPath, tmpFilename, err := h.saver.SaveTemp(file, contentType)
	if err != nil {
		ctx.JSON(500, map[string]string{"error": model.ErrCommon500.Error()})
		return
	}

	res, err := h.service.CreateImage(ctx.Request.Context(), &model.ImageCreateData{
		Title:       title,
		Width:       width,
		Height:      height,
		TmpPath:     tmpPath,
		TmpFilename: tmpFilename,
		ContentType: contentType,
		Size:        header.Size,
	})
	if err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.JSON(201, model.ToImageResponse(res))
}

// GetAllImages - GET /images?page&limit&title
func (h ImageHandler) GetAllImages(ctx *ginext.Context) {
	req, err := parseListQuery(ctx)
	if err != nil {
		ctx.JSON(400, map[string]string{"error": model.ErrIncorrectQuery.Error()})
		return
	}

	res, err := h.service.GetList(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.JSON(200, model.ToListResponse(res))
}

// GetImage - GET /images/:id
func (h ImageHandler) GetImage(ctx *ginext.Context) {
	id := ctx.Param("id")

	res, err := h.service.Get(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.JSON(200, model.ToImageResponse(res))
}

// ServeProcessed - GET /static/:filename: read-only serving of processed
// files. Filenames are content-unique, so the response is immutable.
func (h ImageHandler) ServeProcessed(ctx *ginext.Context) {
	filename := ctx.Param("filename")
	if filename == "" || filename == "." || filename == ".." || filename != filepath.Base(filename) {
		ctx.JSON(400, map[string]string{"error": model.ErrValidation.Error()})
		return
	}

	path := filepath.Join(h.processedDir, filename)
	if _, err := os.Stat(path); err != nil {
		ctx.JSON(404, map[string]string{"error": model.ErrImageNotFound.Error()})
		return
	}

	ctx.Writer.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	ctx.File(path)
}
