package port

import (
	"context"

	"github.com/atxtraffic/camera-proxy-go/internal/uuid"
)

type UUIDGen func() uuid.UUID

// ImageGetter serves one proxied camera image per call: cache-aside read,
// origin fetch on miss, best-effort archive/annotate/cache write.
type ImageGetter interface {
	GetImage(ctx context.Context, in GetImageInput) (GetImageOutput, error)
}
type GetImageInput struct {
	CameraID string
	NoCache  bool
}
type GetImageOutput struct {
	Body        []byte
	ContentType string
	FromCache   bool
}

// DetectionRunner downloads an archived capture, runs remote detection on
// it and persists the results.
type DetectionRunner interface {
	RunDetection(ctx context.Context, in RunDetectionInput) error
}
type RunDetectionInput struct {
	CameraID  string
	ObjectKey string
}
