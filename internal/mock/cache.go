package mock

import (
	"context"
	"time"
)

// Cache implements cache behaviour for tests.
type Cache struct {
	// stored value
	ImageOut []byte

	// errors
	GetImageErr error

	// captured inputs
	SetData []byte
	SetTTL  time.Duration

	// call flags
	GetImageCalled bool
	SetImageCalled bool
}

func (c *Cache) GetImage(ctx context.Context, cameraID string) ([]byte, error) {
	c.GetImageCalled = true
	if c.GetImageErr != nil {
		return nil, c.GetImageErr
	}
	return c.ImageOut, nil
}

func (c *Cache) SetImage(ctx context.Context, cameraID string, data []byte, ttl time.Duration) {
	c.SetImageCalled = true
	c.SetData = data
	c.SetTTL = ttl
}
