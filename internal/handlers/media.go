package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/diabros/apiserver/internal/services"
	"github.com/go-chi/chi/v5"
)

const (
	maxImageMemory = 8 << 20
	maxImageBytes  = 8 << 20
	formFieldFile  = "file"
	formFieldKind  = "kind"
)

// MediaHandler uploads and serves stored images.
type MediaHandler struct {
	mediaService *services.MediaService
}

// NewMediaHandler constructs a handler with the provided service.
func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// MediaRouter registers the public media serving route.
func MediaRouter(r chi.Router, mediaService *services.MediaService) {
	handler := NewMediaHandler(mediaService)

	r.Get("/*", handler.ServeMedia)
}

// MediaUploadResponse describes a stored image and the URL to embed
// when creating a book or person.
type MediaUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// UploadMedia accepts a multipart image and stores it. The returned URL
// is what the admin passes as coverImageUrl/avatarUrl on create.
func (h *AdminHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	kind := strings.TrimSpace(r.FormValue(formFieldKind))
	data, err := readImageFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	object, err := h.mediaService.Upload(r.Context(), kind, data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidMediaKind):
			writeError(w, http.StatusBadRequest, "kind must be cover or avatar")
		case errors.Is(err, services.ErrUnsupportedImage):
			writeError(w, http.StatusBadRequest, "unsupported image format")
		default:
			writeError(w, http.StatusInternalServerError, "failed to store image")
		}
		return
	}

	writeJSON(w, http.StatusCreated, MediaUploadResponse{
		Key: object.Key,
		URL: "/media/" + object.Key,
	})
}

// ServeMedia streams a stored image.
func (h *MediaHandler) ServeMedia(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if key == "" || strings.Contains(key, "..") {
		writeError(w, http.StatusBadRequest, "invalid media key")
		return
	}

	reader, err := h.mediaService.Open(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusNotFound, "media not found")
		return
	}
	defer reader.Close()

	if contentType := mime.TypeByExtension(path.Ext(key)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	if _, err := io.Copy(w, reader); err != nil {
		// Response already started; nothing left to report.
		return
	}
}

func readImageFile(r *http.Request) ([]byte, error) {
	if r.MultipartForm == nil {
		return nil, errors.New("missing form data")
	}

	files := r.MultipartForm.File[formFieldFile]
	if len(files) == 0 {
		return nil, errors.New("image file is required")
	}
	if len(files) > 1 {
		return nil, errors.New("only one image file is allowed")
	}

	file, err := files[0].Open()
	if err != nil {
		return nil, errors.New("failed to read image file")
	}

	data, err := readFileLimited(file, maxImageBytes)
	_ = file.Close()
	if err != nil {
		return nil, err
	}
	return data, nil
}
