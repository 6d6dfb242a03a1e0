package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atxtraffic/camera-proxy-go/internal/config"
	"github.com/atxtraffic/camera-proxy-go/internal/db"
	"github.com/atxtraffic/camera-proxy-go/internal/detector"
	workerHandler "github.com/atxtraffic/camera-proxy-go/internal/handler/worker"
	"github.com/atxtraffic/camera-proxy-go/internal/port"
	"github.com/atxtraffic/camera-proxy-go/internal/repository/mariadb"
	"github.com/atxtraffic/camera-proxy-go/internal/storage"
	"github.com/atxtraffic/camera-proxy-go/internal/task"
	detectionSvc "github.com/atxtraffic/camera-proxy-go/internal/usecase/detection"
	msuuid "github.com/atxtraffic/camera-proxy-go/internal/uuid"
	"github.com/hibiken/asynq"

	"github.com/atxtraffic/camera-proxy-go/internal/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}
	if cfg.DetectorURL == "" {
		logger.Error(ctx, "⚠️  DETECTOR_URL must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg := initStorage(cfg)
	initBucket(strg, cfg.ArchiveBucket)

	repo := mariadb.NewCaptureRepository(database.DB)
	det := detector.NewClient(cfg.DetectorURL, cfg.DetectorToken)
	runDetectionSvc := detectionSvc.NewDetectionRunner(strg, cfg.ArchiveBucket, det, repo, msuuid.NewUUID)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeRunDetection, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseRunDetectionPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.RunDetectionHandler(ctx, p, runDetectionSvc)
	})

	runWorker(ctx, mux, cfg, database)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBucket(strg port.Storage, bucket string) {
	if err := strg.InitBucket(bucket); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize bucket %q: %v", bucket, err)
		os.Exit(1)
	}
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: 10})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	// Close DB
	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
