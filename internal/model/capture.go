package model

import (
	"time"

	"github.com/atxtraffic/camera-proxy-go/internal/uuid"
)

// Capture is one archived camera frame, identified by its content
// fingerprint. A fingerprint maps to exactly one row; the archived bytes
// behind it never change.
type Capture struct {
	ID          uuid.UUID   `json:"id"`
	CameraID    string      `json:"camera_id"`
	ObjectKey   string      `json:"object_key"`
	Fingerprint string      `json:"fingerprint"`
	SizeBytes   int64       `json:"size_bytes"`
	Detections  []Detection `json:"detections"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Detection is one labeled bounding box returned by the inference endpoint.
type Detection struct {
	ID        uuid.UUID `json:"id"`
	CaptureID uuid.UUID `json:"capture_id"`
	Label     string    `json:"label"`
	Score     float64   `json:"score"`
	XMin      float64   `json:"x_min"`
	YMin      float64   `json:"y_min"`
	XMax      float64   `json:"x_max"`
	YMax      float64   `json:"y_max"`
}
