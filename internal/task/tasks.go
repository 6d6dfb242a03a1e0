package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeRunDetection = "detection:run"

type RunDetectionPayload struct {
	CameraID  string `json:"camera_id"`
	ObjectKey string `json:"object_key"`
}

// NewRunDetectionTask creates an Asynq task for detecting objects in an
// archived capture.
func NewRunDetectionTask(cameraID, objectKey string) (*asynq.Task, error) {
	p := RunDetectionPayload{CameraID: cameraID, ObjectKey: objectKey}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal run-detection payload: %w", err)
	}
	return asynq.NewTask(TypeRunDetection, data), nil
}

// ParseRunDetectionPayload parses the task payload to RunDetectionPayload.
func ParseRunDetectionPayload(t *asynq.Task) (RunDetectionPayload, error) {
	var p RunDetectionPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return RunDetectionPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
