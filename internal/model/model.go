// Package model provides data-structs for internal app-usage
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Image - the persisted gallery entity. Path and URL point at the processed
// file; Width/Height are the actual post-processing dimensions reported by
// the codec, not the ones the client asked for.
type Image struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Path      string     `json:"-"`
	URL       string     `json:"url"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ImageCreateData - everything the pipeline needs for one upload. The temp
// file is already on disk and has already passed the upload validator.
type ImageCreateData struct {
	Title       string
	Width       int
	Height      int
	TmpPath     string
	TmpFilename string
	ContentType string
	Size        int64
}

//-------------------

type ListRequest struct {
	Page  int
	Limit int
	Title string
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ImageList - one page of records plus pagination meta computed by the
// service. Page and Limit echo the request values as given.
type ImageList struct {
	Images []Image
	Count  int
	Page   int
	Limit  int
	Pages  int
}

//-------------------

// ImageResponse - public shape of a record, shared by create/get/list.
type ImageResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ListMeta struct {
	Count int `json:"count"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type ListResponse struct {
	Data []ImageResponse `json:"data"`
	Meta ListMeta        `json:"meta"`
}

func ToImageResponse(img *Image) ImageResponse {
	return ImageResponse{
		ID:     img.ID.String(),
		Title:  img.Title,
		URL:    img.URL,
		Width:  img.Width,
		Height: img.Height,
	}
}

func ToListResponse(list *ImageList) ListResponse {
	data := make([]ImageResponse, 0, len(list.Images))
	for i := range list.Images {
		data = append(data, ToImageResponse(&list.Images[i]))
	}
	return ListResponse{
		Data: data,
		Meta: ListMeta{
			Count: list.Count,
			Page:  list.Page,
			Limit: list.Limit,
			Pages: list.Pages,
		},
	}
}

// ------------------

var (
	ErrCommon500        error = errors.New("something went wrong. Try again later") // 500
	ErrProcessingFailed error = errors.New("failed to process image")               // 500
	ErrValidation       error = errors.New("missing or malformed request fields")   // 400
	ErrIncorrectQuery   error = errors.New("incorrect query parameters")            // 400
	ErrIncorrectID      error = errors.New("incorrect image UUID")                  // 400
	ErrImageNotFound    error = errors.New("specified image doesn't exist")         // 404
	ErrPayloadTooLarge  error = errors.New("file size exceeds the upload limit")    // 413
	ErrUnsupportedMedia error = errors.New("unsupported media type")                // 415
	ErrEmptySource      error = errors.New("empty/incorrect source image provided") // 400
)

//--------------------

const (
	JPEG = "image/jpeg"
	PNG  = "image/png"
	WEBP = "image/webp"
	GIF  = "image/gif"
)

// GetImageFileExt maps an accepted content-type to the extension of the
// generated filename. WEBP maps to .jpg - the processed file is transcoded
// since the imaging stack has no webp encoder.
var GetImageFileExt = map[string]string{
	JPEG: ".jpg",
	PNG:  ".png",
	WEBP: ".jpg",
	GIF:  ".gif",
}

var InImageTypeMap = map[string]bool{
	JPEG: true,
	PNG:  true,
	WEBP: true,
	GIF:  true,
}
