// Package events defines the image.created notification published after a
// successful upload. Publishing is best-effort side traffic: a broker outage
// never fails the request that produced the event.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/UnendingLoop/ImageGallery/internal/model"
	"github.com/wb-go/wbf/retry"
)

// Publisher - contract for the queue; satisfied by wbf's kafka.Producer.
type Publisher interface {
	SendWithRetry(ctx context.Context, strategy retry.Strategy, key []byte, v []byte) error
}

type ImageCreated struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func EncodeImageCreated(img *model.Image) ([]byte, []byte, error) {
	payload, err := json.Marshal(ImageCreated{
		ID:        img.ID.String(),
		Title:     img.Title,
		URL:       img.URL,
		Width:     img.Width,
		Height:    img.Height,
		CreatedAt: img.CreatedAt,
	})
	if err != nil {
		return nil, nil, err
	}
	return []byte(img.ID.String()), payload, nil
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) SendWithRetry(_ context.Context, _ retry.Strategy, _ []byte, _ []byte) error {
	return nil
}
