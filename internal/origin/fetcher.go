package origin

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atxtraffic/camera-proxy-go/internal/port"
	"github.com/atxtraffic/camera-proxy-go/internal/usecase/camera"
)

const fetchTimeout = 5 * time.Second

// Fetcher pulls the current frame for a camera from the upstream feed.
// Fail fast, no retries: the caller always has a fallback to serve.
type Fetcher struct {
	baseURL string
	client  *http.Client
}

// compile-time check: *Fetcher must satisfy port.OriginFetcher
var _ port.OriginFetcher = (*Fetcher)(nil)

func NewFetcher(baseURL string) *Fetcher {
	return &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: fetchTimeout},
	}
}

func (f *Fetcher) Fetch(ctx context.Context, cameraID string) ([]byte, error) {
	imageURL := fmt.Sprintf("%s/image/%s.jpg", f.baseURL, url.PathEscape(cameraID))
	log.Printf("fetching origin image for camera #%s from %s...", cameraID, imageURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", camera.ErrOriginFetch, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", camera.ErrOriginFetch, err)
	}
	defer func() {
		if cErr := resp.Body.Close(); cErr != nil {
			log.Printf("failed to close origin response body: %v", cErr)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", camera.ErrOriginFetch, resp.StatusCode, imageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", camera.ErrOriginFetch, err)
	}
	return body, nil
}
