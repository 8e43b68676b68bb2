package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/diabros/apiserver/internal/storage"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type fakeObjectStorage struct {
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (f *fakeObjectStorage) EnsureBucket(ctx context.Context) error { return nil }

func (f *fakeObjectStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = data
	f.types[key] = contentType
	return nil
}

func (f *fakeObjectStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("no such object")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeObjectStorage) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeObjectStorage) Bucket() string { return "test-bucket" }

func newTestMediaService() (*MediaService, *fakeObjectStorage) {
	backend := newFakeObjectStorage()
	return NewMediaService(storage.NewStorage(backend)), backend
}

func TestMediaUploadStoresPNG(t *testing.T) {
	svc, backend := newTestMediaService()

	object, err := svc.Upload(t.Context(), MediaKindCover, pngHeader)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(object.Key, "cover/") || !strings.HasSuffix(object.Key, ".png") {
		t.Fatalf("unexpected key %q", object.Key)
	}
	if object.ContentType != "image/png" {
		t.Fatalf("unexpected content type %q", object.ContentType)
	}
	if _, ok := backend.objects[object.Key]; !ok {
		t.Fatalf("object not stored under %q", object.Key)
	}
	if backend.types[object.Key] != "image/png" {
		t.Fatalf("content type not forwarded to backend")
	}
}

func TestMediaUploadIsContentAddressed(t *testing.T) {
	svc, _ := newTestMediaService()

	first, err := svc.Upload(t.Context(), MediaKindAvatar, pngHeader)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	second, err := svc.Upload(t.Context(), MediaKindAvatar, pngHeader)
	if err != nil {
		t.Fatalf("re-upload: %v", err)
	}
	if first.Key != second.Key {
		t.Fatalf("same content produced different keys: %q vs %q", first.Key, second.Key)
	}
}

func TestMediaUploadRejectsUnknownKind(t *testing.T) {
	svc, _ := newTestMediaService()

	if _, err := svc.Upload(t.Context(), "banner", pngHeader); !errors.Is(err, ErrInvalidMediaKind) {
		t.Fatalf("expected ErrInvalidMediaKind, got %v", err)
	}
}

func TestMediaUploadRejectsNonImage(t *testing.T) {
	svc, _ := newTestMediaService()

	if _, err := svc.Upload(t.Context(), MediaKindCover, []byte("just some text")); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
}

func TestMediaUploadRejectsEmptyData(t *testing.T) {
	svc, _ := newTestMediaService()

	if _, err := svc.Upload(t.Context(), MediaKindCover, nil); err == nil {
		t.Fatalf("expected error for empty upload")
	}
}

func TestMediaOpenRoundTrip(t *testing.T) {
	svc, _ := newTestMediaService()

	object, err := svc.Upload(t.Context(), MediaKindCover, pngHeader)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	reader, err := svc.Open(t.Context(), object.Key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data, pngHeader) {
		t.Fatalf("stored bytes differ from upload")
	}
}
