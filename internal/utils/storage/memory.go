package storage

import (
	"context"
	"errors"
	"sync"
)

// MemoryStorage keeps images in memory. It backs tests and demo setups.
// This implementation is safe for concurrent use.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]*Image
	// FailUploads makes every Upload return ErrUploadFailed.
	FailUploads bool
}

var ErrUploadFailed = errors.New("upload failed")

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string]*Image)}
}

func (m *MemoryStorage) Upload(ctx context.Context, folder string, img *Image) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailUploads {
		return "", ErrUploadFailed
	}
	url := "memory://" + objectKey(folder, img.FileName())
	m.objects[url] = img
	return url, nil
}

func (m *MemoryStorage) Delete(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, url)
	return nil
}

// Has reports whether url points at a stored object.
func (m *MemoryStorage) Has(url string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[url]
	return ok
}

func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
