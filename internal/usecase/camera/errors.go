package camera

import "errors"

var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")

	// ErrOriginFetch marks a failed upstream camera-feed fetch. It is never
	// masked by the fallback image: "camera feed is down" is not the same
	// thing as "cannot identify camera".
	ErrOriginFetch = errors.New("origin: fetch failed")
)
