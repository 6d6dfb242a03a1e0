package port

import (
	"context"

	"github.com/atxtraffic/camera-proxy-go/internal/model"
)

// CaptureRepository defines persistence operations for archived captures
// and their detections.
type CaptureRepository interface {
	Create(ctx context.Context, capture *model.Capture) error
	ExistsByFingerprint(ctx context.Context, fingerprint string) (bool, error)
}
