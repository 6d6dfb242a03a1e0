package integration

import (
	"fmt"
	"os"
	"testing"

	"github.com/atxtraffic/camera-proxy-go/internal/storage"
	"github.com/atxtraffic/camera-proxy-go/test/testutil"
)

var (
	GlobalMinioClient *storage.MinioStorage
	GlobalRedisAddr   string
)

func TestMain(m *testing.M) {
	code := func() int {
		dbCleanup, err := setupMariaDB()
		if err != nil {
			fmt.Fprintf(os.Stderr, "DB setup failed: %v\n", err)
			return 1
		}
		defer dbCleanup()

		minioCleanup, err := setupMinIO()
		if err != nil {
			fmt.Fprintf(os.Stderr, "MinIO setup failed: %v\n", err)
			return 1
		}
		defer minioCleanup()

		redisCleanup, err := setupRedis()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Redis setup failed: %v\n", err)
			return 1
		}
		defer redisCleanup()

		return m.Run()
	}()

	os.Exit(code)
}

func setupMariaDB() (cleanup func(), err error) {
	if os.Getenv("TEST_DB_DSN") != "" {
		// CI provided it; nothing to clean up
		return func() {}, nil
	}

	mdb, err := testutil.StartMariaDBContainer()
	if err != nil {
		return nil, err
	}

	os.Setenv("TEST_DB_DSN", mdb.DSN)

	return mdb.Cleanup, nil
}

func setupMinIO() (cleanup func(), err error) {
	if endpoint := os.Getenv("TEST_MINIO_ENDPOINT"); endpoint != "" {
		// CI path: build the global storage client
		access := os.Getenv("TEST_MINIO_ACCESS_KEY")
		secret := os.Getenv("TEST_MINIO_SECRET_KEY")
		useSSL := os.Getenv("TEST_MINIO_USE_SSL") == "true"

		client, err := storage.NewStorage(endpoint, access, secret, useSSL)
		if err != nil {
			return nil, err
		}

		GlobalMinioClient = client

		return func() {}, nil
	}

	// local path: start a container
	mi, err := testutil.StartMinIOContainer()
	if err != nil {
		return nil, err
	}

	GlobalMinioClient = mi.Strg

	return mi.Cleanup, nil
}

func setupRedis() (cleanup func(), err error) {
	if addr := os.Getenv("TEST_REDIS_ADDR"); addr != "" {
		GlobalRedisAddr = addr
		return func() {}, nil
	}

	ri, err := testutil.StartRedisContainer()
	if err != nil {
		return nil, err
	}

	GlobalRedisAddr = ri.Addr

	return ri.Cleanup, nil
}
