package imgpostgres

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/UnendingLoop/ImageGallery/internal/model"
	"github.com/wb-go/wbf/dbpg"
)

type PostgresRepo struct {
	DB *dbpg.DB
}

func (p PostgresRepo) Create(ctx context.Context, n *model.Image) error {
	query := `INSERT INTO images (id, title, path, url, width, height, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	return p.DB.QueryRowContext(ctx, query, n.ID, n.Title, n.Path, n.URL, n.Width, n.Height, n.CreatedAt, n.CreatedAt).Err()
}

func (p PostgresRepo) Get(ctx context.Context, id string) (*model.Image, error) {
	query := `SELECT id, title, path, url, width, height, created_at, updated_at
	FROM images
	WHERE id = $1`
	var image model.Image

	err := p.DB.QueryRowContext(ctx, query, id).Scan(&image.ID,
		&image.Title,
		&image.Path,
		&image.URL,
		&image.Width,
		&image.Height,
		&image.CreatedAt,
		&image.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, model.ErrImageNotFound
		default:
			return nil, err // 500
		}
	}
	return &image, nil
}

// GetList returns one page of records ordered newest-first. The title filter
// is a case-insensitive substring match.
func (p PostgresRepo) GetList(ctx context.Context, req *model.ListRequest) ([]model.Image, error) {
	query := `SELECT id, title, path, url, width, height, created_at, updated_at
	FROM images
	WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
	ORDER BY created_at DESC
	LIMIT $2
	OFFSET $3`

	offset := (req.Page - 1) * req.Limit

	rows, err := p.DB.QueryContext(ctx, query, req.Title, req.Limit, offset)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("Error while closing *sql.Rows after scanning: %v", err)
		}
	}()

	images := make([]model.Image, 0, req.Limit)
	for rows.Next() {
		var image model.Image
		if err := rows.Scan(&image.ID,
			&image.Title,
			&image.Path,
			&image.URL,
			&image.Width,
			&image.Height,
			&image.CreatedAt,
			&image.UpdatedAt); err != nil {
			return nil, err
		}
		images = append(images, image)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return images, nil
}

// Count returns total rows matching the same filter GetList applies - used
// by the service to compute the page count.
func (p PostgresRepo) Count(ctx context.Context, title string) (int, error) {
	query := `SELECT count(*)
	FROM images
	WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')`

	var count int
	if err := p.DB.QueryRowContext(ctx, query, title).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
