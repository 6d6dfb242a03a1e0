package mock

import (
	"context"

	"github.com/atxtraffic/camera-proxy-go/internal/model"
)

// CaptureRepository implements the repository interface for tests.
type CaptureRepository struct {
	// stored values
	ExistsOut bool

	// captured inputs
	CreatedCapture *model.Capture

	// errors
	CreateErr error
	ExistsErr error

	// call flags
	CreateCalled bool
	ExistsCalled bool
}

func (r *CaptureRepository) Create(ctx context.Context, capture *model.Capture) error {
	r.CreateCalled = true
	r.CreatedCapture = capture
	return r.CreateErr
}

func (r *CaptureRepository) ExistsByFingerprint(ctx context.Context, fingerprint string) (bool, error) {
	r.ExistsCalled = true
	if r.ExistsErr != nil {
		return false, r.ExistsErr
	}
	return r.ExistsOut, nil
}
