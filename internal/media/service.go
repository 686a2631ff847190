package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sewakantor/booking-backend/internal/pkg/storage"
	"github.com/sewakantor/booking-backend/internal/resource"
)

// MaxPhotoSizeBytes caps office photo uploads at 10 MiB.
const MaxPhotoSizeBytes = 10 << 20

type Service interface {
	Upload(ctx context.Context, officeID, uploaderID string, header *multipart.FileHeader) (*Photo, error)
	ListByOffice(ctx context.Context, officeID string) ([]*Photo, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo       Repository
	resService resource.Service
	store      storage.Storage
	imgProc    *storage.ImageProcessor
}

func NewService(repo Repository, resService resource.Service, store storage.Storage) Service {
	return &service{
		repo:       repo,
		resService: resService,
		store:      store,
		imgProc:    storage.NewImageProcessor(),
	}
}

func (s *service) Upload(ctx context.Context, officeID, uploaderID string, header *multipart.FileHeader) (*Photo, error) {
	// Reject uploads for offices that do not exist.
	if _, err := s.resService.GetByID(ctx, officeID); err != nil {
		return nil, err
	}

	if header.Size > MaxPhotoSizeBytes {
		return nil, ErrPhotoTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read upload content failed: %w", err)
	}

	// Photos are normalized to capped-size JPEGs regardless of what was
	// uploaded; the original bytes are never stored.
	normalized, err := s.imgProc.NormalizePhoto(bytes.NewReader(raw), 1600, 1600)
	if err != nil {
		return nil, ErrNotAnImage
	}

	photoID := uuid.New().String()
	shard := photoID[:2]
	storagePath := fmt.Sprintf("photos/%s/%s.jpg", shard, photoID)

	if err := s.store.Save(ctx, storagePath, normalized); err != nil {
		return nil, fmt.Errorf("save photo failed: %w", err)
	}

	var thumbnailPath *string
	if thumb, err := s.imgProc.Thumbnail(bytes.NewReader(raw), 320, 320); err == nil {
		tPath := fmt.Sprintf("photos/%s/%s_thumb.jpg", shard, photoID)
		if err := s.store.Save(ctx, tPath, thumb); err == nil {
			thumbnailPath = &tPath
		}
	}

	p := &Photo{
		ID:            photoID,
		OfficeID:      officeID,
		UploaderID:    uploaderID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   "image/jpeg",
		Size:          header.Size,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		// Roll the blobs back when the metadata write fails.
		_ = s.store.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.store.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return p, nil
}

func (s *service) ListByOffice(ctx context.Context, officeID string) ([]*Photo, error) {
	if _, err := s.resService.GetByID(ctx, officeID); err != nil {
		return nil, err
	}
	return s.repo.ListByOffice(ctx, officeID)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.store.Get(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve photo failed: %w", err)
	}
	return stream, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.store.Get(ctx, *p.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve thumbnail failed: %w", err)
	}
	return stream, p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Best-effort blob cleanup; the metadata row is the source of truth.
	_ = s.store.Delete(ctx, p.StoragePath)
	if p.ThumbnailPath != nil {
		_ = s.store.Delete(ctx, *p.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}
