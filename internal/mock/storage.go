package mock

import (
	"bytes"
	"context"
	"io"

	"github.com/atxtraffic/camera-proxy-go/internal/port"
)

// Storage implements the storage interface for tests.
type Storage struct {
	// stored values
	StatInfoOut port.FileInfo
	GetOut      []byte
	ExistsOut   bool

	// captured inputs
	ObjectKey string
	SavedData []byte
	SavedOpts map[string]string

	// errors
	InitBucketErr error
	StatErr       error
	GetErr        error
	SaveErr       error
	FileExistsErr error

	// call counters
	FileExistsCalls int
	SaveCalls       int

	// call flags
	InitBucketCalled bool
	StatCalled       bool
	GetCalled        bool
	SaveCalled       bool
	FileExistsCalled bool
}

func (m *Storage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	return m.InitBucketErr
}

func (m *Storage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	m.FileExistsCalled = true
	m.FileExistsCalls++
	m.ObjectKey = fileKey
	if m.FileExistsErr != nil {
		return false, m.FileExistsErr
	}
	return m.ExistsOut, nil
}

func (m *Storage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfoOut, nil
}

func (m *Storage) GetFile(ctx context.Context, bucket, fileKey string) (io.ReadSeekCloser, error) {
	m.GetCalled = true
	m.ObjectKey = fileKey
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return nopReadSeekCloser{bytes.NewReader(m.GetOut)}, nil
}

func (m *Storage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	m.SaveCalled = true
	m.SaveCalls++
	m.ObjectKey = fileKey
	m.SavedOpts = opts
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.SavedData = data
	return m.SaveErr
}

type nopReadSeekCloser struct{ *bytes.Reader }

func (nopReadSeekCloser) Close() error { return nil }
