package transport

import (
	"errors"
	"io"
	"log"
	"strconv"

	"github.com/UnendingLoop/ImageGallery/internal/model"
	"github.com/wb-go/wbf/ginext"
)

func errorCodeDefiner(err error) int {
	switch {
	case errors.Is(err, model.ErrImageNotFound):
		return 404
	case errors.Is(err, model.ErrPayloadTooLarge):
		return 413
	case errors.Is(err, model.ErrUnsupportedMedia):
		return 415
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrIncorrectQuery),
		errors.Is(err, model.ErrIncorrectID),
		errors.Is(err, model.ErrEmptySource):
		return 400
	case errors.Is(err, model.ErrProcessingFailed),
		errors.Is(err, model.ErrCommon500):
		return 500
	default:
		return 500
	}
}

func closeFileFlow(res io.ReadCloser) {
	if res == nil {
		return
	}
	if err := res.Close(); err != nil {
		log.Println("Handler failed to close fileflow:", err)
	}
}

func parsePositiveInt(raw string) (int, error) {
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if val <= 0 {
		return 0, errors.New("value must be positive")
	}
	return val, nil
}

// parseListQuery distinguishes absent params (defaults apply) from present
// but malformed ones (400). Range checks live in the service.
func parseListQuery(ctx *ginext.Context) (*model.ListRequest, error) {
	req := &model.ListRequest{
		Page:  model.DefaultPage,
		Limit: model.DefaultLimit,
		Title: ctx.Query("title"),
	}

	if raw := ctx.Query("page"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.Page = val
	}

	if raw := ctx.Query("limit"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.Limit = val
	}

	return req, nil
}
