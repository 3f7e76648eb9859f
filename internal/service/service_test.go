package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/UnendingLoop/ImageGallery/internal/imageproc"
	"github.com/UnendingLoop/ImageGallery/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"
)

func writeTempUpload(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("upload-bytes"), 0o644))
	return path
}

func validCreateData(t *testing.T, tmpDir string) *model.ImageCreateData {
	t.Helper()
	name := uuid.New().String() + ".jpg"
	return &model.ImageCreateData{
		Title:       "Landscape Photo",
		Width:       2000,
		Height:      1500,
		TmpPath:     writeTempUpload(t, tmpDir, name),
		TmpFilename: name,
		ContentType: model.JPEG,
		Size:        12,
	}
}

func okStorage() *mockFileStorage {
	return &mockFileStorage{
		saveFn: func(ctx context.Context, localPath, filename, ct string) (string, string, error) {
			return localPath, "http://localhost:3000/static/" + filename, nil
		},
		removeFn: func(ctx context.Context, filename string) error { return nil },
	}
}

func okPublisher(called *int) *mockPublisher {
	return &mockPublisher{
		sendFn: func(ctx context.Context, s retry.Strategy, key []byte, v []byte) error {
			if called != nil {
				*called++
			}
			return nil
		},
	}
}

// CREATEIMAGE - SUCCESS
func TestImageService_CreateImage_OK(t *testing.T) {
	tmpDir := t.TempDir()
	processedDir := t.TempDir()
	data := validCreateData(t, tmpDir)

	var created *model.Image
	repo := &mockRepo{
		createFn: func(ctx context.Context, img *model.Image) error {
			created = img
			return nil
		},
	}

	// codec reports dimensions different from the requested 2000x1500
	proc := &mockProcessor{
		processFn: func(in, out string, w, h int) (imageproc.Dimensions, error) {
			require.Equal(t, data.TmpPath, in)
			require.Equal(t, filepath.Join(processedDir, data.TmpFilename), out)
			require.NoError(t, os.WriteFile(out, []byte("processed"), 0o644))
			return imageproc.Dimensions{Width: 1920, Height: 1080}, nil
		},
	}

	published := 0
	svc := NewImageService(repo, proc, okStorage(), okPublisher(&published), processedDir)

	img, err := svc.CreateImage(context.Background(), data)
	require.NoError(t, err)
	require.NotNil(t, img)

	// actual codec dimensions win over the requested ones
	require.Equal(t, 1920, img.Width)
	require.Equal(t, 1080, img.Height)
	require.Equal(t, "Landscape Photo", img.Title)
	require.Equal(t, "http://localhost:3000/static/"+data.TmpFilename, img.URL)
	require.NotNil(t, img.CreatedAt)
	require.Same(t, created, img)

	// temp source is consumed on success
	require.NoFileExists(t, data.TmpPath)
	require.Equal(t, 1, published)
}

// CREATEIMAGE - VALIDATION FAIL
func TestImageService_CreateImage_InvalidInput(t *testing.T) {
	svc := NewImageService(nil, nil, nil, nil, "")

	tests := []struct {
		name    string
		data    *model.ImageCreateData
		wantErr error
	}{
		{name: "empty title", data: &model.ImageCreateData{Title: "  ", Width: 10, Height: 10, TmpPath: "p", TmpFilename: "f"}, wantErr: model.ErrValidation},
		{name: "zero width", data: &model.ImageCreateData{Title: "t", Width: 0, Height: 10, TmpPath: "p", TmpFilename: "f"}, wantErr: model.ErrValidation},
		{name: "negative height", data: &model.ImageCreateData{Title: "t", Width: 10, Height: -1, TmpPath: "p", TmpFilename: "f"}, wantErr: model.ErrValidation},
		{name: "no temp file", data: &model.ImageCreateData{Title: "t", Width: 10, Height: 10}, wantErr: model.ErrEmptySource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateImage(context.Background(), tt.data)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// CREATEIMAGE - CODEC FAIL
func TestImageService_CreateImage_CodecError(t *testing.T) {
	tmpDir := t.TempDir()
	processedDir := t.TempDir()
	data := validCreateData(t, tmpDir)

	repoCalled := false
	repo := &mockRepo{
		createFn: func(ctx context.Context, img *model.Image) error {
			repoCalled = true
			return nil
		},
	}

	proc := &mockProcessor{
		processFn: func(in, out string, w, h int) (imageproc.Dimensions, error) {
			// partial destination left behind by the codec
			require.NoError(t, os.WriteFile(out, []byte("partial"), 0o644))
			return imageproc.Dimensions{}, errors.New("corrupt input")
		},
	}

	svc := NewImageService(repo, proc, okStorage(), okPublisher(nil), processedDir)

	_, err := svc.CreateImage(context.Background(), data)
	require.ErrorIs(t, err, model.ErrProcessingFailed)

	// no row, no leftover files
	require.False(t, repoCalled)
	require.NoFileExists(t, data.TmpPath)
	require.NoFileExists(t, filepath.Join(processedDir, data.TmpFilename))
}

// CREATEIMAGE - CODEC FAIL, NOTHING WRITTEN
func TestImageService_CreateImage_CodecError_NoPartialFile(t *testing.T) {
	tmpDir := t.TempDir()
	data := validCreateData(t, tmpDir)

	proc := &mockProcessor{
		processFn: func(in, out string, w, h int) (imageproc.Dimensions, error) {
			return imageproc.Dimensions{}, errors.New("decode failed")
		},
	}

	// cleanup of a never-created destination must be swallowed
	svc := NewImageService(&mockRepo{}, proc, okStorage(), okPublisher(nil), t.TempDir())

	_, err := svc.CreateImage(context.Background(), data)
	require.ErrorIs(t, err, model.ErrProcessingFailed)
	require.NoFileExists(t, data.TmpPath)
}

// CREATEIMAGE - STORAGE FAIL
func TestImageService_CreateImage_StorageError(t *testing.T) {
	tmpDir := t.TempDir()
	processedDir := t.TempDir()
	data := validCreateData(t, tmpDir)

	proc := &mockProcessor{
		processFn: func(in, out string, w, h int) (imageproc.Dimensions, error) {
			require.NoError(t, os.WriteFile(out, []byte("processed"), 0o644))
			return imageproc.Dimensions{Width: 100, Height: 100}, nil
		},
	}

	storage := &mockFileStorage{
		saveFn: func(ctx context.Context, localPath, filename, ct string) (string, string, error) {
			return "", "", errors.New("storage is down")
		},
	}

	svc := NewImageService(&mockRepo{}, proc, storage, okPublisher(nil), processedDir)

	_, err := svc.CreateImage(context.Background(), data)
	require.ErrorIs(t, err, model.ErrProcessingFailed)
	require.NoFileExists(t, filepath.Join(processedDir, data.TmpFilename))
}

// CREATEIMAGE - DB FAIL
func TestImageService_CreateImage_DBError(t *testing.T) {
	tmpDir := t.TempDir()
	processedDir := t.TempDir()
	data := validCreateData(t, tmpDir)

	repo := &mockRepo{
		createFn: func(ctx context.Context, img *model.Image) error {
			return errors.New("db down")
		},
	}

	proc := &mockProcessor{
		processFn: func(in, out string, w, h int) (imageproc.Dimensions, error) {
			require.NoError(t, os.WriteFile(out, []byte("processed"), 0o644))
			return imageproc.Dimensions{Width: 100, Height: 100}, nil
		},
	}

	removed := ""
	storage := okStorage()
	storage.removeFn = func(ctx context.Context, filename string) error {
		removed = filename
		return nil
	}

	svc := NewImageService(repo, proc, storage, okPublisher(nil), processedDir)

	_, err := svc.CreateImage(context.Background(), data)
	require.ErrorIs(t, err, model.ErrProcessingFailed)

	// stored file is rolled back when the row insert fails
	require.Equal(t, data.TmpFilename, removed)
}

// CREATEIMAGE - PUBLISHER FAIL IS NOT FATAL
func TestImageService_CreateImage_PublisherErrorIgnored(t *testing.T) {
	tmpDir := t.TempDir()
	processedDir := t.TempDir()
	data := validCreateData(t, tmpDir)

	repo := &mockRepo{
		createFn: func(ctx context.Context, img *model.Image) error { return nil },
	}
	proc := &mockProcessor{
		processFn: func(in, out string, w, h int) (imageproc.Dimensions, error) {
			require.NoError(t, os.WriteFile(out, []byte("processed"), 0o644))
			return imageproc.Dimensions{Width: 100, Height: 100}, nil
		},
	}
	pub := &mockPublisher{
		sendFn: func(ctx context.Context, s retry.Strategy, key []byte, v []byte) error {
			return errors.New("broker down")
		},
	}

	svc := NewImageService(repo, proc, okStorage(), pub, processedDir)

	img, err := svc.CreateImage(context.Background(), data)
	require.NoError(t, err)
	require.NotNil(t, img)
}

// GETLIST - SUCCESS + PAGINATION MATH
func TestImageService_GetList_OK(t *testing.T) {
	repo := &mockRepo{
		getListFn: func(ctx context.Context, req *model.ListRequest) ([]model.Image, error) {
			require.Equal(t, 2, req.Page)
			require.Equal(t, 10, req.Limit)
			return make([]model.Image, 10), nil
		},
		countFn: func(ctx context.Context, title string) (int, error) {
			return 25, nil
		},
	}

	svc := NewImageService(repo, nil, nil, nil, "")

	res, err := svc.GetList(context.Background(), &model.ListRequest{Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Len(t, res.Images, 10)
	require.Equal(t, 25, res.Count)
	require.Equal(t, 2, res.Page)
	require.Equal(t, 10, res.Limit)
	require.Equal(t, 3, res.Pages) // ceil(25/10)
}

// GETLIST - TITLE FILTER REACHES REPO
func TestImageService_GetList_TitleFilter(t *testing.T) {
	repo := &mockRepo{
		getListFn: func(ctx context.Context, req *model.ListRequest) ([]model.Image, error) {
			require.Equal(t, "Landscape", req.Title)
			return []model.Image{{Title: "Landscape Photo"}}, nil
		},
		countFn: func(ctx context.Context, title string) (int, error) {
			require.Equal(t, "Landscape", title)
			return 1, nil
		},
	}

	svc := NewImageService(repo, nil, nil, nil, "")

	res, err := svc.GetList(context.Background(), &model.ListRequest{Page: 1, Limit: 10, Title: "Landscape"})
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	require.Equal(t, 1, res.Pages)
}

// GETLIST - BAD QUERY
func TestImageService_GetList_BadQuery(t *testing.T) {
	svc := NewImageService(nil, nil, nil, nil, "")

	tests := []struct {
		name string
		req  *model.ListRequest
	}{
		{name: "page below 1", req: &model.ListRequest{Page: 0, Limit: 10}},
		{name: "negative page", req: &model.ListRequest{Page: -3, Limit: 10}},
		{name: "zero limit", req: &model.ListRequest{Page: 1, Limit: 0}},
		{name: "limit above max", req: &model.ListRequest{Page: 1, Limit: 101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetList(context.Background(), tt.req)
			require.ErrorIs(t, err, model.ErrIncorrectQuery)
		})
	}
}

// GET - SUCCESS
func TestImageService_Get_OK(t *testing.T) {
	id := uuid.New().String()

	repo := &mockRepo{
		getFn: func(ctx context.Context, uid string) (*model.Image, error) {
			return &model.Image{ID: uuid.MustParse(uid)}, nil
		},
	}

	svc := NewImageService(repo, nil, nil, nil, "")

	img, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, img.ID.String())
}

// GET - BAD ID
func TestImageService_Get_InvalidID(t *testing.T) {
	svc := NewImageService(nil, nil, nil, nil, "")
	_, err := svc.Get(context.Background(), "bad-id")
	require.ErrorIs(t, err, model.ErrIncorrectID)
}

// GET - NOT FOUND
func TestImageService_Get_NotFound(t *testing.T) {
	repo := &mockRepo{
		getFn: func(ctx context.Context, id string) (*model.Image, error) {
			return nil, model.ErrImageNotFound
		},
	}

	svc := NewImageService(repo, nil, nil, nil, "")
	_, err := svc.Get(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, model.ErrImageNotFound)
}
