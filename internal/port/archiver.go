package port

import "context"

// Archiver persists a deduplicated copy of fetched bytes under a
// fingerprint-derived key. The fingerprint is always returned, whether or
// not the write happened; isNew reports that a durable write took place.
type Archiver interface {
	ArchiveIfAbsent(ctx context.Context, cameraID string, data []byte) (fingerprint string, isNew bool)
}
