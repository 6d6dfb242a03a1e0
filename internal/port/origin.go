package port

import "context"

// OriginFetcher retrieves the current raw image for a camera from the
// upstream feed. No retries; any non-success outcome is an error.
type OriginFetcher interface {
	Fetch(ctx context.Context, cameraID string) ([]byte, error)
}
