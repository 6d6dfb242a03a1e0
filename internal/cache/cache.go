package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atxtraffic/camera-proxy-go/internal/port"
	"github.com/redis/go-redis/v9"
)

// Per-operation bound so a slow cache never stalls an image response.
const opTimeout = 500 * time.Millisecond

// Options configure the Redis connection for the image cache.
type Options struct {
	Addr          string
	Password      string
	UseTLS        bool
	TLSSkipVerify bool
}

// Cache is a read-through/write-through store of raw image bytes. The
// connection is established lazily, exactly once per process. If that first
// attempt fails the cache degrades to a permanent no-op instead of retrying
// on every request.
type Cache struct {
	opts Options

	connectOnce sync.Once
	client      *redis.Client
	degraded    atomic.Bool
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(opts Options) *Cache {
	return &Cache{opts: opts}
}

// getClient memoizes the connection. A failed ping flips the store into
// degraded mode for the rest of the process lifetime.
func (c *Cache) getClient(ctx context.Context) *redis.Client {
	c.connectOnce.Do(func() {
		ropts := &redis.Options{
			Addr:     c.opts.Addr,
			Password: c.opts.Password,
			DB:       0,
		}
		if c.opts.UseTLS {
			ropts.TLSConfig = &tls.Config{InsecureSkipVerify: c.opts.TLSSkipVerify}
		}
		rdb := redis.NewClient(ropts)

		pingCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), opTimeout)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Printf("cache unreachable at %q, degrading to no-op: %v", c.opts.Addr, err)
			c.degraded.Store(true)
			_ = rdb.Close()
			return
		}
		c.client = rdb
	})
	if c.degraded.Load() {
		return nil
	}
	return c.client
}

// Degraded reports whether the store has given up on its backend.
func (c *Cache) Degraded() bool {
	return c.degraded.Load()
}

func (c *Cache) GetImage(ctx context.Context, cameraID string) ([]byte, error) {
	client := c.getClient(ctx)
	if client == nil {
		return nil, nil // degraded: behave like a miss
	}

	log.Printf("getting cached image for camera #%s...", cameraID)

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	val, err := client.Get(opCtx, getCacheKey(cameraID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) SetImage(ctx context.Context, cameraID string, data []byte, ttl time.Duration) {
	client := c.getClient(ctx)
	if client == nil {
		return
	}

	log.Printf("caching image for camera #%s for %s...", cameraID, ttl)

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := client.SetEx(opCtx, getCacheKey(cameraID), data, ttl).Err(); err != nil {
		log.Printf("redis setex failed for camera #%s: %v", cameraID, err)
	}
}

func getCacheKey(cameraID string) string {
	return "camera:" + cameraID
}
