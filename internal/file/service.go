package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/eqprent/equipment-rental-backend/internal/pkg/apperror"
	"github.com/eqprent/equipment-rental-backend/internal/pkg/storage"
)

// MaxUploadSize bounds a single uploaded file.
const MaxUploadSize = 10 << 20 // 10 MiB

var (
	ErrTooLarge        = apperror.New(http.StatusRequestEntityTooLarge, "uploaded file exceeds the size limit")
	ErrUnsupportedType = apperror.New(http.StatusUnsupportedMediaType, "only image uploads are supported")
)

// Upload is the stored result of a single uploaded file. Path and
// ThumbnailPath are public URL paths under the static uploads route.
type Upload struct {
	Path          string  `json:"path"`
	ThumbnailPath *string `json:"thumbnail_path,omitempty"`
	Filename      string  `json:"filename"`
	ContentType   string  `json:"content_type"`
	Size          int64   `json:"size"`
}

type Service interface {
	Upload(ctx context.Context, header *multipart.FileHeader) (*Upload, error)
}

type service struct {
	storage storage.Storage
}

func NewService(store storage.Storage) Service {
	return &service{storage: store}
}

func (s *service) Upload(ctx context.Context, header *multipart.FileHeader) (*Upload, error) {
	if header.Size > MaxUploadSize {
		return nil, ErrTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedType
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Buffer the content: it is read twice, once for the original and once
	// for the thumbnail.
	fileBytes, err := io.ReadAll(io.LimitReader(src, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	if int64(len(fileBytes)) > MaxUploadSize {
		return nil, ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	fileID := uuid.New().String()

	// Shard by the first two UUID characters to keep directories small.
	shard := fileID[:2]
	storagePath := fmt.Sprintf("%s/%s%s", shard, fileID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save file to storage: %w", err)
	}

	var thumbnailPath *string
	if thumb, err := storage.Thumbnail(bytes.NewReader(fileBytes), 200, 200); err == nil {
		tPath := fmt.Sprintf("%s/%s_thumb.jpg", shard, fileID)
		if err := s.storage.Save(ctx, tPath, thumb); err == nil {
			public := "/uploads/" + tPath
			thumbnailPath = &public
		}
	}

	return &Upload{
		Path:          "/uploads/" + storagePath,
		ThumbnailPath: thumbnailPath,
		Filename:      header.Filename,
		ContentType:   contentType,
		Size:          header.Size,
	}, nil
}
