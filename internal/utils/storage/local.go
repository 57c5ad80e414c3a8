package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// localStorage writes images under a media root that the HTTP server
// exposes as static files at /media.
type localStorage struct {
	root    string
	baseURL string
}

func NewLocalStorage(root, baseURL string) (ImageStorage, error) {
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &localStorage{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *localStorage) Upload(ctx context.Context, folder string, img *Image) (string, error) {
	key := objectKey(folder, img.FileName())
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/media/" + key, nil
}

func (s *localStorage) Delete(ctx context.Context, url string) error {
	prefix := s.baseURL + "/media/"
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	key := strings.TrimPrefix(url, prefix)
	if strings.Contains(key, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
