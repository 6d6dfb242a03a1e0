package port

import (
	"context"

	"github.com/atxtraffic/camera-proxy-go/internal/model"
)

// Detector calls the managed inference endpoint for an archived object and
// returns the labeled bounding boxes it found. The model itself is a black
// box on the far side of the wire.
type Detector interface {
	Detect(ctx context.Context, objectKey string) ([]model.Detection, error)
}
