package media

import (
	"net/http"
	"time"

	"github.com/sewakantor/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "photo not found")
	ErrNotAnImage    = apperror.New(http.StatusUnsupportedMediaType, "only image uploads are accepted")
	ErrPhotoTooLarge = apperror.New(http.StatusRequestEntityTooLarge, "photo exceeds the maximum upload size")
	ErrNoThumbnail   = apperror.New(http.StatusNotFound, "thumbnail not available")
)

// Photo is an uploaded office photo. The blob itself lives in storage; only
// metadata is kept in the database.
type Photo struct {
	ID            string
	OfficeID      string
	UploaderID    string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// URL returns the public path for fetching the photo by ID.
func URL(id string) string {
	return "/v1/photos/" + id
}

// ThumbnailURL returns the public path for fetching the photo's thumbnail.
func ThumbnailURL(id string) string {
	return "/v1/photos/" + id + "/thumbnail"
}
