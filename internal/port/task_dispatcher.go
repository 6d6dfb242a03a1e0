package port

import "context"

// TaskDispatcher enqueues asynchronous tasks related to archived captures.
type TaskDispatcher interface {
	EnqueueRunDetection(ctx context.Context, cameraID, objectKey string) error
}
