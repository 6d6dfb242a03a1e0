package mock

import "context"

// TaskDispatcher implements the dispatcher interface for tests.
type TaskDispatcher struct {
	// captured inputs
	CameraID  string
	ObjectKey string

	// errors
	EnqueueErr error

	// call flags
	EnqueueCalled bool
}

func (d *TaskDispatcher) EnqueueRunDetection(ctx context.Context, cameraID, objectKey string) error {
	d.EnqueueCalled = true
	d.CameraID = cameraID
	d.ObjectKey = objectKey
	return d.EnqueueErr
}
