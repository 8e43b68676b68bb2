package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"

	"github.com/diabros/apiserver/internal/storage"
)

// Media kinds accepted for upload.
const (
	MediaKindCover  = "cover"
	MediaKindAvatar = "avatar"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ErrUnsupportedImage is returned when the uploaded data is not a
// recognized image format.
var ErrUnsupportedImage = errors.New("unsupported image format")

// ErrInvalidMediaKind is returned for an unknown media kind.
var ErrInvalidMediaKind = errors.New("invalid media kind")

// MediaObject describes a stored image.
type MediaObject struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
}

// MediaService stores cover and avatar images in object storage.
// Objects are content-addressed, so re-uploading the same image is a
// harmless overwrite.
type MediaService struct {
	storage *storage.Storage
}

func NewMediaService(st *storage.Storage) *MediaService {
	return &MediaService{storage: st}
}

// Upload validates and stores an image, returning its object key.
func (s *MediaService) Upload(ctx context.Context, kind string, data []byte) (MediaObject, error) {
	if kind != MediaKindCover && kind != MediaKindAvatar {
		return MediaObject{}, ErrInvalidMediaKind
	}
	if len(data) == 0 {
		return MediaObject{}, errors.New("empty upload")
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return MediaObject{}, ErrUnsupportedImage
	}

	hash := sha256.Sum256(data)
	key := kind + "/" + hex.EncodeToString(hash[:16]) + ext

	if err := s.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return MediaObject{}, err
	}

	return MediaObject{Key: key, ContentType: contentType}, nil
}

// Open returns a reader for a stored image.
func (s *MediaService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.storage.Get(ctx, key)
}
