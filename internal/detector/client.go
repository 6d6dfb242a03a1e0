package detector

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/atxtraffic/camera-proxy-go/internal/model"
	"github.com/atxtraffic/camera-proxy-go/internal/port"
	"resty.dev/v3"
)

// Cold inference containers can take a while to answer.
const detectTimeout = 60 * time.Second

// Client talks to the managed inference endpoint. The model behind it is a
// black box that takes an archived object key and returns labeled boxes.
type Client struct {
	client   *resty.Client
	endpoint string
}

// compile-time check: *Client must satisfy port.Detector
var _ port.Detector = (*Client)(nil)

func NewClient(endpoint, token string) *Client {
	log.Println("initialising detector client...")
	c := resty.New().SetTimeout(detectTimeout)
	if token != "" {
		c.SetAuthToken(token)
	}
	return &Client{client: c, endpoint: endpoint}
}

type detectRequest struct {
	Key string `json:"key"`
}

type detectionPayload struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
	XMin  float64 `json:"x_min"`
	YMin  float64 `json:"y_min"`
	XMax  float64 `json:"x_max"`
	YMax  float64 `json:"y_max"`
}

type detectResponse struct {
	Detections []detectionPayload `json:"detections"`
	SHA256     string             `json:"sha256"`
}

func (c *Client) Detect(ctx context.Context, objectKey string) ([]model.Detection, error) {
	log.Printf("requesting detections for %q...", objectKey)

	var out detectResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(detectRequest{Key: objectKey}).
		SetResult(&out).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("calling inference endpoint: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("inference endpoint returned %s", resp.Status())
	}

	detections := make([]model.Detection, 0, len(out.Detections))
	for _, d := range out.Detections {
		detections = append(detections, model.Detection{
			Label: d.Label,
			Score: d.Score,
			XMin:  d.XMin,
			YMin:  d.YMin,
			XMax:  d.XMax,
			YMax:  d.YMax,
		})
	}
	return detections, nil
}
