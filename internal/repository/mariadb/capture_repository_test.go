package mariadb

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atxtraffic/camera-proxy-go/internal/model"
	msuuid "github.com/atxtraffic/camera-proxy-go/internal/uuid"
	"github.com/google/uuid"
)

var (
	captureInsertRe = regexp.QuoteMeta(`
      INSERT INTO captures
        (id, camera_id, object_key, fingerprint, size_bytes, created_at)
      VALUES (?, ?, ?, ?, ?, ?)
    `)
	detectionInsertRe = regexp.QuoteMeta(`
      INSERT INTO detections
        (id, capture_id, label, score, x_min, y_min, x_max, y_max)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `)
)

func sampleCapture(t *testing.T) *model.Capture {
	t.Helper()
	capID := msuuid.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	detID := msuuid.UUID(uuid.MustParse("11111111-2222-3333-4444-555555555555"))
	return &model.Capture{
		ID:          capID,
		CameraID:    "395",
		ObjectKey:   "cameras/395/aabbccddeeff0011.jpg",
		Fingerprint: "aabbccddeeff0011",
		SizeBytes:   54321,
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Detections: []model.Detection{
			{ID: detID, CaptureID: capID, Label: "car", Score: 0.97, XMin: 10, YMin: 20, XMax: 110, YMax: 220},
		},
	}
}

func TestCaptureRepository_Create_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewCaptureRepository(sqlDB)
	c := sampleCapture(t)

	mock.ExpectBegin()
	mock.ExpectExec(captureInsertRe).
		WithArgs(c.ID, c.CameraID, c.ObjectKey, c.Fingerprint, c.SizeBytes, c.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(detectionInsertRe).
		WithArgs(
			c.Detections[0].ID, c.Detections[0].CaptureID,
			c.Detections[0].Label, c.Detections[0].Score,
			c.Detections[0].XMin, c.Detections[0].YMin,
			c.Detections[0].XMax, c.Detections[0].YMax,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.Create(context.Background(), c); err != nil {
		t.Errorf("Create() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCaptureRepository_Create_DetectionInsertFailsRollsBack(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewCaptureRepository(sqlDB)
	c := sampleCapture(t)

	mock.ExpectBegin()
	mock.ExpectExec(captureInsertRe).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(detectionInsertRe).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	if err := repo.Create(context.Background(), c); err == nil {
		t.Error("Create() should fail when a detection insert fails")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCaptureRepository_ExistsByFingerprint(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewCaptureRepository(sqlDB)

	queryRe := regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM captures WHERE fingerprint = ?)`)

	mock.ExpectQuery(queryRe).
		WithArgs("aabbccddeeff0011").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByFingerprint(context.Background(), "aabbccddeeff0011")
	if err != nil {
		t.Fatalf("ExistsByFingerprint() returned unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected exists = true")
	}

	mock.ExpectQuery(queryRe).
		WithArgs("ffffffffffffffff").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err = repo.ExistsByFingerprint(context.Background(), "ffffffffffffffff")
	if err != nil {
		t.Fatalf("ExistsByFingerprint() returned unexpected error: %v", err)
	}
	if exists {
		t.Error("expected exists = false")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
