package detection

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/atxtraffic/camera-proxy-go/internal/api_context"
	"github.com/atxtraffic/camera-proxy-go/internal/logger"
	"github.com/atxtraffic/camera-proxy-go/internal/model"
	"github.com/atxtraffic/camera-proxy-go/internal/port"
)

type detectionRunnerSrv struct {
	strg     port.Storage
	bucket   string
	detector port.Detector
	repo     port.CaptureRepository
	genUUID  port.UUIDGen
}

// compile-time check: *detectionRunnerSrv must satisfy port.DetectionRunner
var _ port.DetectionRunner = (*detectionRunnerSrv)(nil)

func NewDetectionRunner(strg port.Storage, bucket string, detector port.Detector, repo port.CaptureRepository, genUUID port.UUIDGen) port.DetectionRunner {
	return &detectionRunnerSrv{
		strg:     strg,
		bucket:   bucket,
		detector: detector,
		repo:     repo,
		genUUID:  genUUID,
	}
}

// RunDetection processes one archived capture: skip if its fingerprint was
// already recorded, otherwise ask the inference endpoint for detections and
// persist the capture with its boxes. Safe to re-run; the fingerprint check
// keeps it idempotent.
func (s *detectionRunnerSrv) RunDetection(ctx context.Context, in port.RunDetectionInput) error {
	ctx = api_context.WithCameraID(ctx, in.CameraID)

	fingerprint, err := fingerprintFromKey(in.ObjectKey)
	if err != nil {
		return err
	}

	exists, err := s.repo.ExistsByFingerprint(ctx, fingerprint)
	if err != nil {
		return fmt.Errorf("checking capture %q: %w", fingerprint, err)
	}
	if exists {
		logger.Infof(ctx, "capture %s already processed, skipping", fingerprint)
		return nil
	}

	info, err := s.strg.StatFile(ctx, s.bucket, in.ObjectKey)
	if err != nil {
		return fmt.Errorf("stating archived object %q: %w", in.ObjectKey, err)
	}

	detections, err := s.detector.Detect(ctx, in.ObjectKey)
	if err != nil {
		return fmt.Errorf("detecting objects in %q: %w", in.ObjectKey, err)
	}

	capture := &model.Capture{
		ID:          s.genUUID(),
		CameraID:    in.CameraID,
		ObjectKey:   in.ObjectKey,
		Fingerprint: fingerprint,
		SizeBytes:   info.SizeBytes,
		CreatedAt:   time.Now().UTC(),
	}
	for _, d := range detections {
		d.ID = s.genUUID()
		d.CaptureID = capture.ID
		capture.Detections = append(capture.Detections, d)
	}

	if err := s.repo.Create(ctx, capture); err != nil {
		return fmt.Errorf("persisting capture %q: %w", fingerprint, err)
	}

	logger.Infof(ctx, "recorded capture %s with %d detections", fingerprint, len(capture.Detections))
	return nil
}

// fingerprintFromKey extracts the content hash from an archive key shaped
// like cameras/{cameraId}/{fingerprint}.jpg.
func fingerprintFromKey(key string) (string, error) {
	base := path.Base(key)
	fingerprint := strings.TrimSuffix(base, ".jpg")
	if fingerprint == "" || fingerprint == base || fingerprint == "." {
		return "", fmt.Errorf("object key %q does not look like an archive key", key)
	}
	return fingerprint, nil
}
