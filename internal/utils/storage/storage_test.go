package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"foodgram/domain"

	"github.com/sony/gobreaker/v2"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func pngDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
}

func TestDecodeBase64Image(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "valid png", raw: pngDataURI()},
		{name: "not a data uri", raw: "https://example.com/cat.png", wantErr: true},
		{name: "missing base64 marker", raw: "data:image/png," + string(pngBytes), wantErr: true},
		{name: "unsupported type", raw: "data:image/tiff;base64,AAAA", wantErr: true},
		{name: "bad payload", raw: "data:image/png;base64,!!!", wantErr: true},
		{name: "mismatched content", raw: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(pngBytes), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeBase64Image(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeBase64Image() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if img.ContentType != "image/png" {
				t.Fatalf("content type = %q", img.ContentType)
			}
			if !strings.HasSuffix(img.FileName(), ".png") {
				t.Fatalf("file name %q lacks extension", img.FileName())
			}
		})
	}
}

func TestLocalStorageUploadAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStorage(root, "http://localhost:8080/")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	img := &Image{ContentType: "image/png", Data: pngBytes}
	url, err := store.Upload(context.Background(), "recipes", img)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/media/recipes/") {
		t.Fatalf("unexpected url %q", url)
	}

	key := strings.TrimPrefix(url, "http://localhost:8080/media/")
	path := filepath.Join(root, filepath.FromSlash(key))
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("uploaded file missing: %v", err)
	}

	if err := store.Delete(context.Background(), url); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file still present after delete: %v", err)
	}
	if err := store.Delete(context.Background(), url); err != nil {
		t.Fatalf("second Delete should be a no-op: %v", err)
	}
}

func TestBreakerStorageOpensAfterRepeatedFailures(t *testing.T) {
	inner := NewMemoryStorage()
	inner.FailUploads = true
	store := NewBreakerStorage(inner, time.Minute)
	img := &Image{ContentType: "image/png", Data: pngBytes}

	for i := 0; i < breakerFailureThreshold; i++ {
		if _, err := store.Upload(context.Background(), "recipes", img); !errors.Is(err, ErrUploadFailed) {
			t.Fatalf("upload %d: expected ErrUploadFailed, got %v", i, err)
		}
	}

	inner.FailUploads = false
	if _, err := store.Upload(context.Background(), "recipes", img); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open breaker, got %v", err)
	}
	if inner.Len() != 0 {
		t.Fatalf("open breaker must not reach the backing store")
	}
}
