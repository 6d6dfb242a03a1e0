package archive

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"

	"github.com/atxtraffic/camera-proxy-go/internal/port"
)

// PrefixLen is how much of the fingerprint gets rendered onto the image.
const PrefixLen = 16

// Archiver stores each distinct frame exactly once, keyed by the sha256 of
// its bytes. Storage trouble never propagates: the fingerprint is computed
// locally and the caller must be able to proceed without the archive.
type Archiver struct {
	strg   port.Storage
	bucket string
}

// compile-time check: *Archiver must satisfy port.Archiver
var _ port.Archiver = (*Archiver)(nil)

func NewArchiver(strg port.Storage, bucket string) *Archiver {
	return &Archiver{strg: strg, bucket: bucket}
}

func (a *Archiver) ArchiveIfAbsent(ctx context.Context, cameraID string, data []byte) (string, bool) {
	fp := Fingerprint(data)
	key := ObjectKey(cameraID, fp)

	exists, err := a.strg.FileExists(ctx, a.bucket, key)
	if err != nil {
		log.Printf("archive existence check failed for %q: %v", key, err)
		return fp, false
	}
	if exists {
		log.Printf("archive already holds %q, skipping write", key)
		return fp, false
	}

	opts := map[string]string{"Content-Type": "image/jpeg"}
	if err := a.strg.SaveFile(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), opts); err != nil {
		log.Printf("archive write failed for %q: %v", key, err)
		return fp, false
	}
	return fp, true
}

// Fingerprint returns the full sha256 hex digest of data. Identical bytes
// always hash identically; that is the whole deduplication scheme.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Prefix shortens a fingerprint for on-image display.
func Prefix(fingerprint string) string {
	if len(fingerprint) <= PrefixLen {
		return fingerprint
	}
	return fingerprint[:PrefixLen]
}

// ObjectKey derives the archive key for a camera/content pair.
func ObjectKey(cameraID, fingerprint string) string {
	return fmt.Sprintf("cameras/%s/%s.jpg", cameraID, fingerprint)
}
