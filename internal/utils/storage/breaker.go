package storage

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sony/gobreaker/v2"
)

const breakerFailureThreshold = 5

// breakerStorage short-circuits uploads while the backing store keeps
// failing, so requests fail fast instead of waiting on a dead bucket.
type breakerStorage struct {
	inner ImageStorage
	cb    *gobreaker.CircuitBreaker[string]
}

func NewBreakerStorage(inner ImageStorage, timeout time.Duration) ImageStorage {
	settings := gobreaker.Settings{
		Name:    "image-storage",
		Timeout: timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("circuit breaker %s: %s -> %s", name, from, to)
		},
	}
	return &breakerStorage{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[string](settings),
	}
}

func (s *breakerStorage) Upload(ctx context.Context, folder string, img *Image) (string, error) {
	return s.cb.Execute(func() (string, error) {
		return s.inner.Upload(ctx, folder, img)
	})
}

func (s *breakerStorage) Delete(ctx context.Context, url string) error {
	_, err := s.cb.Execute(func() (string, error) {
		return "", s.inner.Delete(ctx, url)
	})
	return err
}
