package integration

import (
	"context"
	"io"
	"testing"

	"github.com/atxtraffic/camera-proxy-go/internal/archive"
)

func TestArchiverIntegration(t *testing.T) {
	ctx := context.Background()
	const bucket = "archive-it"

	if err := GlobalMinioClient.InitBucket(bucket); err != nil {
		t.Fatalf("init bucket: %v", err)
	}

	archiver := archive.NewArchiver(GlobalMinioClient, bucket)
	data := []byte("not-really-a-jpeg-but-bytes-are-bytes")

	fingerprint, isNew := archiver.ArchiveIfAbsent(ctx, "395", data)
	if fingerprint == "" {
		t.Fatal("expected a fingerprint")
	}
	if !isNew {
		t.Fatal("first archive of this content should be new")
	}

	key := archive.ObjectKey("395", fingerprint)
	exists, err := GlobalMinioClient.FileExists(ctx, bucket, key)
	if err != nil {
		t.Fatalf("file exists check: %v", err)
	}
	if !exists {
		t.Fatalf("expected %q to exist after archiving", key)
	}

	rc, err := GlobalMinioClient.GetFile(ctx, bucket, key)
	if err != nil {
		t.Fatalf("get archived file: %v", err)
	}
	defer rc.Close()
	stored, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read archived file: %v", err)
	}
	if string(stored) != string(data) {
		t.Errorf("archived bytes differ from the original")
	}

	// Same content again: same fingerprint, no second write
	fingerprint2, isNew2 := archiver.ArchiveIfAbsent(ctx, "395", data)
	if fingerprint2 != fingerprint {
		t.Errorf("fingerprint changed between identical uploads: %q vs %q", fingerprint, fingerprint2)
	}
	if isNew2 {
		t.Error("re-archiving identical content should not be new")
	}
}
