package http

import (
	"time"

	"github.com/sewakantor/booking-backend/internal/media"
)

type PhotoResponse struct {
	ID           string    `json:"id"`
	OfficeID     string    `json:"office_id"`
	Filename     string    `json:"filename"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewPhotoResponse(p *media.Photo) PhotoResponse {
	var thumbURL *string
	if p.ThumbnailPath != nil {
		t := media.ThumbnailURL(p.ID)
		thumbURL = &t
	}

	return PhotoResponse{
		ID:           p.ID,
		OfficeID:     p.OfficeID,
		Filename:     p.Filename,
		URL:          media.URL(p.ID),
		ThumbnailURL: thumbURL,
		ContentType:  p.ContentType,
		Size:         p.Size,
		CreatedAt:    p.CreatedAt,
	}
}
