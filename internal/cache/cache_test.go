package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func makeTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	// spin up in-memory Redis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	t.Cleanup(mr.Close)
	return NewCache(Options{Addr: mr.Addr()}), mr
}

func TestGetSetImage(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	img := []byte("\xff\xd8\xff\xe0 not really a jpeg")

	// 1) Cache miss
	got, err := c.GetImage(ctx, "395")
	if err != nil {
		t.Fatalf("GetImage miss: %v", err)
	}
	if got != nil {
		t.Errorf("GetImage miss: got %v; want nil", got)
	}

	// 2) Set + Get round-trip, byte identical
	c.SetImage(ctx, "395", img, 60*time.Second)
	if ttl := mr.TTL(getCacheKey("395")); ttl <= 0 || ttl > 60*time.Second {
		t.Errorf("redis TTL = %v; want ~60s", ttl)
	}
	got, err = c.GetImage(ctx, "395")
	if err != nil {
		t.Fatalf("GetImage hit: %v", err)
	}
	if !bytes.Equal(got, img) {
		t.Errorf("GetImage hit: got %d bytes; want the exact stored bytes", len(got))
	}

	// 3) Keys are per camera
	if got, _ := c.GetImage(ctx, "396"); got != nil {
		t.Errorf("GetImage other camera: got %v; want nil", got)
	}
}

func TestGetImage_Expiry(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	c.SetImage(ctx, "395", []byte("frame"), time.Second)
	mr.FastForward(2 * time.Second)

	if got, err := c.GetImage(ctx, "395"); err != nil || got != nil {
		t.Errorf("after expiry GetImage = (%v, %v); want (nil, nil)", got, err)
	}
}

func TestCache_DegradesToNoopOnConnectFailure(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	addr := mr.Addr()
	// kill the backend before the first use so the lazy connect fails
	mr.Close()

	c := NewCache(Options{Addr: addr})
	ctx := context.Background()

	got, err := c.GetImage(ctx, "395")
	if err != nil || got != nil {
		t.Fatalf("degraded GetImage = (%v, %v); want (nil, nil)", got, err)
	}
	if !c.Degraded() {
		t.Fatal("expected cache to report degraded after failed connect")
	}

	// subsequent ops stay no-ops, no reconnect attempts
	c.SetImage(ctx, "395", []byte("frame"), time.Minute)
	if got, err := c.GetImage(ctx, "395"); err != nil || got != nil {
		t.Errorf("degraded SetImage/GetImage = (%v, %v); want (nil, nil)", got, err)
	}
}

func TestCache_HealthyStoreIsNotDegraded(t *testing.T) {
	c, _ := makeTestCache(t)

	if _, err := c.GetImage(context.Background(), "395"); err != nil {
		t.Fatalf("GetImage: %v", err)
	}
	if c.Degraded() {
		t.Fatal("healthy store must not be degraded")
	}
}
