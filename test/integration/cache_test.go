package integration

import (
	"context"
	"testing"
	"time"

	"github.com/atxtraffic/camera-proxy-go/internal/cache"
)

func TestCacheIntegration(t *testing.T) {
	ctx := context.Background()
	ca := cache.NewCache(cache.Options{Addr: GlobalRedisAddr})

	// Miss on an unknown camera
	got, err := ca.GetImage(ctx, "unknown-camera")
	if err != nil {
		t.Fatalf("get on empty cache: %v", err)
	}
	if got != nil {
		t.Fatalf("expected a miss, got %d bytes", len(got))
	}

	// Roundtrip
	data := []byte("jpeg-bytes")
	ca.SetImage(ctx, "395", data, time.Minute)

	got, err = ca.GetImage(ctx, "395")
	if err != nil {
		t.Fatalf("get after set: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("cached bytes = %q; want %q", got, data)
	}

	if ca.Degraded() {
		t.Error("cache should not be degraded against a live server")
	}
}
