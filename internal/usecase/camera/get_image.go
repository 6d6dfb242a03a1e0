package camera

import (
	"context"
	"fmt"
	"time"

	"github.com/atxtraffic/camera-proxy-go/internal/api_context"
	"github.com/atxtraffic/camera-proxy-go/internal/archive"
	"github.com/atxtraffic/camera-proxy-go/internal/logger"
	"github.com/atxtraffic/camera-proxy-go/internal/port"
)

const contentTypeJPEG = "image/jpeg"

type imageGetterSrv struct {
	cache      port.Cache
	fetcher    port.OriginFetcher
	archiver   port.Archiver
	annotator  port.Annotator
	dispatcher port.TaskDispatcher
	ttl        time.Duration
}

// compile-time check: *imageGetterSrv must satisfy port.ImageGetter
var _ port.ImageGetter = (*imageGetterSrv)(nil)

func NewImageGetter(cache port.Cache, fetcher port.OriginFetcher, archiver port.Archiver, annotator port.Annotator, dispatcher port.TaskDispatcher, ttl time.Duration) port.ImageGetter {
	return &imageGetterSrv{
		cache:      cache,
		fetcher:    fetcher,
		archiver:   archiver,
		annotator:  annotator,
		dispatcher: dispatcher,
		ttl:        ttl,
	}
}

// GetImage runs the cache-aside pipeline for one request: cache lookup,
// origin fetch on miss, then archive, annotate and cache write. Only the
// origin fetch can fail the call; archive, annotation and both cache legs
// are best-effort and explicitly absorbed.
func (s *imageGetterSrv) GetImage(ctx context.Context, in port.GetImageInput) (port.GetImageOutput, error) {
	ctx = api_context.WithCameraID(ctx, in.CameraID)

	if !in.NoCache {
		cached, err := s.cache.GetImage(ctx, in.CameraID)
		absorb(ctx, "cache read", err) // a failing cache is a miss
		if err == nil && cached != nil {
			logger.Info(ctx, "serving cached image")
			return port.GetImageOutput{Body: cached, ContentType: contentTypeJPEG, FromCache: true}, nil
		}
	}

	data, err := s.fetcher.Fetch(ctx, in.CameraID)
	if err != nil {
		return port.GetImageOutput{}, fmt.Errorf("fetching camera %q: %w", in.CameraID, err)
	}

	fingerprint, isNew := s.archiver.ArchiveIfAbsent(ctx, in.CameraID, data)
	if isNew {
		key := archive.ObjectKey(in.CameraID, fingerprint)
		absorb(ctx, "detection enqueue", s.dispatcher.EnqueueRunDetection(ctx, in.CameraID, key))
	}

	annotated := s.annotator.Annotate(data, archive.Prefix(fingerprint))

	if !in.NoCache {
		s.cache.SetImage(ctx, in.CameraID, annotated, s.ttl)
	}

	logger.Info(ctx, "serving fresh image", "fingerprint", archive.Prefix(fingerprint), "archived", isNew)
	return port.GetImageOutput{Body: annotated, ContentType: contentTypeJPEG}, nil
}

// absorb logs a best-effort failure and drops it. Keeping the
// non-propagation in one place makes the failure policy auditable.
func absorb(ctx context.Context, step string, err error) {
	if err != nil {
		logger.Warnf(ctx, "best-effort step %q failed: %v", step, err)
	}
}
