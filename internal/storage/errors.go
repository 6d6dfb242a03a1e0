package storage

import (
	"fmt"

	"github.com/atxtraffic/camera-proxy-go/internal/usecase/camera"
	"github.com/minio/minio-go/v7"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return camera.ErrObjectNotFound
	case "NoSuchBucket":
		return camera.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return camera.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", camera.ErrInternal, err)
	}
}
