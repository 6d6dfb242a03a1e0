package worker

import (
	"context"
	"log"

	"github.com/atxtraffic/camera-proxy-go/internal/port"
	"github.com/atxtraffic/camera-proxy-go/internal/task"
)

// RunDetectionHandler handles a run-detection task. It converts the incoming
// task payload to the input expected by the detection runner and delegates
// the call.
func RunDetectionHandler(ctx context.Context, p task.RunDetectionPayload, svc port.DetectionRunner) error {
	in := port.RunDetectionInput{CameraID: p.CameraID, ObjectKey: p.ObjectKey}
	if err := svc.RunDetection(ctx, in); err != nil {
		log.Printf("❌  Failed to run detection on %q: %v", p.ObjectKey, err)
		return err
	}

	log.Printf("✅  Successfully ran detection on %q", p.ObjectKey)
	return nil
}
