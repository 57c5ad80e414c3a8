package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"foodgram/domain"

	"github.com/google/uuid"
)

var AllowImage = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// ImageStorage persists uploaded images and hands back a public URL.
type ImageStorage interface {
	Upload(ctx context.Context, folder string, img *Image) (string, error)
	Delete(ctx context.Context, url string) error
}

type Image struct {
	ContentType string
	Data        []byte
}

// FileName returns a random object name carrying the image extension.
func (i *Image) FileName() string {
	return fmt.Sprintf("%s.%s", uuid.NewString(), extensions[i.ContentType])
}

// DecodeBase64Image parses a data URI of the form
// "data:image/png;base64,<payload>".
func DecodeBase64Image(raw string) (*Image, error) {
	if !strings.HasPrefix(raw, "data:image/") {
		return nil, domain.Validationf("image must be a base64 data URI")
	}
	header, payload, ok := strings.Cut(raw, ";base64,")
	if !ok {
		return nil, domain.Validationf("image must be base64 encoded")
	}
	contentType := strings.TrimPrefix(header, "data:")
	if !slices.Contains(AllowImage, contentType) {
		return nil, domain.Validationf("unsupported image type %s", contentType)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, domain.Validationf("invalid image payload: %v", err)
	}
	if len(data) == 0 {
		return nil, domain.Validationf("image is empty")
	}
	if detected := http.DetectContentType(data); strings.HasPrefix(detected, "image/") && detected != contentType {
		return nil, domain.Validationf("image declared as %s but looks like %s", contentType, detected)
	}

	return &Image{ContentType: contentType, Data: data}, nil
}

func objectKey(folder, name string) string {
	return strings.Trim(folder, "/") + "/" + name
}
