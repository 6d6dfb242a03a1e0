package mock

import (
	"context"

	"github.com/atxtraffic/camera-proxy-go/internal/model"
)

// Detector implements the inference client interface for tests.
type Detector struct {
	// stored values
	DetectionsOut []model.Detection

	// captured inputs
	ObjectKey string

	// errors
	DetectErr error

	// call flags
	DetectCalled bool
}

func (d *Detector) Detect(ctx context.Context, objectKey string) ([]model.Detection, error) {
	d.DetectCalled = true
	d.ObjectKey = objectKey
	if d.DetectErr != nil {
		return nil, d.DetectErr
	}
	return d.DetectionsOut, nil
}
