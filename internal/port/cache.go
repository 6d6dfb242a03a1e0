package port

import (
	"context"
	"time"
)

// Cache stores raw camera image bytes with per-key expiry.
// Get must treat backend unavailability as a miss; Set is best-effort and
// never surfaces failures to the caller.
type Cache interface {
	GetImage(ctx context.Context, cameraID string) ([]byte, error)
	SetImage(ctx context.Context, cameraID string, data []byte, ttl time.Duration)
}
