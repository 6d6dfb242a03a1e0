package mock

import (
	"context"

	"github.com/atxtraffic/camera-proxy-go/internal/port"
)

// TokenVerifier implements the verifier interface for tests.
type TokenVerifier struct {
	// stored values
	ClaimsOut port.Claims

	// captured inputs
	Token string

	// errors
	VerifyErr error

	// call flags
	VerifyCalled bool
}

func (v *TokenVerifier) Verify(token string) (port.Claims, error) {
	v.VerifyCalled = true
	v.Token = token
	if v.VerifyErr != nil {
		return port.Claims{}, v.VerifyErr
	}
	return v.ClaimsOut, nil
}

// OriginFetcher implements the fetcher interface for tests.
type OriginFetcher struct {
	// stored values
	ImageOut []byte

	// captured inputs
	CameraID string

	// errors
	FetchErr error

	// call counters
	FetchCalls int

	// call flags
	FetchCalled bool
}

func (f *OriginFetcher) Fetch(ctx context.Context, cameraID string) ([]byte, error) {
	f.FetchCalled = true
	f.FetchCalls++
	f.CameraID = cameraID
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	return f.ImageOut, nil
}

// Archiver implements the archiver interface for tests.
type Archiver struct {
	// stored values
	FingerprintOut string
	IsNewOut       bool

	// captured inputs
	Data []byte

	// call flags
	ArchiveCalled bool
}

func (a *Archiver) ArchiveIfAbsent(ctx context.Context, cameraID string, data []byte) (string, bool) {
	a.ArchiveCalled = true
	a.Data = data
	return a.FingerprintOut, a.IsNewOut
}

// Annotator implements the annotator interface for tests.
type Annotator struct {
	// stored values
	AnnotatedOut []byte

	// captured inputs
	Label string

	// call flags
	AnnotateCalled bool
}

func (a *Annotator) Annotate(data []byte, label string) []byte {
	a.AnnotateCalled = true
	a.Label = label
	if a.AnnotatedOut != nil {
		return a.AnnotatedOut
	}
	return data
}

// ImageGetter implements the proxy usecase interface for tests.
type ImageGetter struct {
	// stored values
	Out port.GetImageOutput

	// captured inputs
	In port.GetImageInput

	// errors
	GetImageErr error

	// call flags
	GetImageCalled bool
}

func (g *ImageGetter) GetImage(ctx context.Context, in port.GetImageInput) (port.GetImageOutput, error) {
	g.GetImageCalled = true
	g.In = in
	if g.GetImageErr != nil {
		return port.GetImageOutput{}, g.GetImageErr
	}
	return g.Out, nil
}

// DetectionRunner implements the detection usecase interface for tests.
type DetectionRunner struct {
	// captured inputs
	In port.RunDetectionInput

	// errors
	RunErr error

	// call flags
	RunCalled bool
}

func (r *DetectionRunner) RunDetection(ctx context.Context, in port.RunDetectionInput) error {
	r.RunCalled = true
	r.In = in
	return r.RunErr
}
