package task

import (
	"context"

	"github.com/atxtraffic/camera-proxy-go/internal/port"
)

type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueRunDetection(ctx context.Context, cameraID, objectKey string) error {
	return nil
}
