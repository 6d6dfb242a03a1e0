package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/atxtraffic/camera-proxy-go/internal/model"
	"github.com/atxtraffic/camera-proxy-go/internal/port"
)

type CaptureRepository struct {
	db *sql.DB
}

// compile-time check: *CaptureRepository must satisfy port.CaptureRepository
var _ port.CaptureRepository = (*CaptureRepository)(nil)

func NewCaptureRepository(db *sql.DB) *CaptureRepository {
	return &CaptureRepository{db: db}
}

// Create persists a capture and its detections in one transaction.
func (r *CaptureRepository) Create(ctx context.Context, capture *model.Capture) error {
	log.Printf("creating database record for capture %q of camera #%s...", capture.Fingerprint, capture.CameraID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(); rErr != nil && rErr != sql.ErrTxDone {
			log.Printf("rollback failed for capture %q: %v", capture.Fingerprint, rErr)
		}
	}()

	const captureQuery = `
      INSERT INTO captures
        (id, camera_id, object_key, fingerprint, size_bytes, created_at)
      VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err = tx.ExecContext(ctx, captureQuery,
		capture.ID, capture.CameraID, capture.ObjectKey,
		capture.Fingerprint, capture.SizeBytes, capture.CreatedAt,
	)
	if err != nil {
		return err
	}

	const detectionQuery = `
      INSERT INTO detections
        (id, capture_id, label, score, x_min, y_min, x_max, y_max)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	for _, d := range capture.Detections {
		if _, err := tx.ExecContext(ctx, detectionQuery,
			d.ID, d.CaptureID, d.Label, d.Score,
			d.XMin, d.YMin, d.XMax, d.YMax,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ExistsByFingerprint reports whether a capture with this content hash has
// already been recorded.
func (r *CaptureRepository) ExistsByFingerprint(ctx context.Context, fingerprint string) (bool, error) {
	log.Printf("checking database for capture %q...", fingerprint)

	const query = `SELECT EXISTS(SELECT 1 FROM captures WHERE fingerprint = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, fingerprint).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
