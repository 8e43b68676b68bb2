package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diabros/apiserver/internal/services"
	"github.com/diabros/apiserver/internal/storage"
	"github.com/go-chi/chi/v5"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type memObjectStorage struct {
	objects map[string][]byte
}

func (m *memObjectStorage) EnsureBucket(ctx context.Context) error { return nil }

func (m *memObjectStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memObjectStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, errors.New("no such object")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memObjectStorage) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memObjectStorage) Bucket() string { return "test-bucket" }

func newMediaFixture(t *testing.T) (*adminFixture, *services.MediaService) {
	t.Helper()

	books := &fakeBookRepo{}
	people := &fakePersonRepo{}
	recs := &fakeRecRepo{books: books, people: people}
	users := &fakeUserRepo{}
	admin := seedUser(t, users, "admin", "adminpass", "admin")

	mediaService := services.NewMediaService(storage.NewStorage(&memObjectStorage{
		objects: make(map[string][]byte),
	}))

	handler := NewAdminHandler(
		services.NewBookService(books, recs),
		services.NewPersonService(people, recs),
		services.NewRecommendationService(recs),
		services.NewUserService(users),
		mediaService,
		nil,
	)

	router := chi.NewRouter()
	router.Route("/admin", func(r chi.Router) {
		AdminRouter(r, handler, RequireAuth(testJWTSecret))
	})
	router.Route("/media", func(r chi.Router) {
		MediaRouter(r, mediaService)
	})

	adminToken, err := issueTokenForTest(admin.ID)
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}

	return &adminFixture{router: router, users: users, adminToken: adminToken}, mediaService
}

func issueTokenForTest(userID int) (string, error) {
	return issueToken(userID, []byte(testJWTSecret), defaultTokenTTL)
}

func multipartImage(t *testing.T, kind string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField(formFieldKind, kind); err != nil {
		t.Fatalf("write kind field: %v", err)
	}
	part, err := writer.CreateFormFile(formFieldFile, "upload.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write file data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestUploadAndServeMedia(t *testing.T) {
	f, _ := newMediaFixture(t)

	body, contentType := multipartImage(t, services.MediaKindCover, pngHeader)
	req := httptest.NewRequest(http.MethodPost, "/admin/media", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+f.adminToken)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp MediaUploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.URL != "/media/"+resp.Key {
		t.Fatalf("url %q does not match key %q", resp.URL, resp.Key)
	}

	getReq := httptest.NewRequest(http.MethodGet, resp.URL, nil)
	getRec := httptest.NewRecorder()
	f.router.ServeHTTP(getRec, getReq)

	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200 serving media, got %d", getRec.Code)
	}
	if !bytes.Equal(getRec.Body.Bytes(), pngHeader) {
		t.Fatalf("served bytes differ from upload")
	}
	if ct := getRec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestUploadMediaRejectsBadKind(t *testing.T) {
	f, _ := newMediaFixture(t)

	body, contentType := multipartImage(t, "banner", pngHeader)
	req := httptest.NewRequest(http.MethodPost, "/admin/media", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+f.adminToken)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUploadMediaRejectsNonImage(t *testing.T) {
	f, _ := newMediaFixture(t)

	body, contentType := multipartImage(t, services.MediaKindCover, []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/admin/media", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+f.adminToken)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestServeMediaRejectsTraversal(t *testing.T) {
	f, _ := newMediaFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/media/cover/..%2f..%2fsecret", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestServeMediaMissingObject(t *testing.T) {
	f, _ := newMediaFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/media/cover/doesnotexist.png", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
