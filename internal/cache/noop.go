package cache

import (
	"context"
	"time"

	"github.com/atxtraffic/camera-proxy-go/internal/port"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetImage(ctx context.Context, cameraID string) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) SetImage(ctx context.Context, cameraID string, data []byte, ttl time.Duration) {
}
