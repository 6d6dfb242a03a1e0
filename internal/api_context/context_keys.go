package api_context

import (
	"context"
)

type ctxKey string

const (
	CameraIDKey ctxKey = "cameraID"
)

func CameraIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CameraIDKey).(string)
	return id, ok
}

func WithCameraID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CameraIDKey, id)
}
