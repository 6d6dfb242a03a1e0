package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/atxtraffic/camera-proxy-go/internal/annotate"
	"github.com/atxtraffic/camera-proxy-go/internal/archive"
	"github.com/atxtraffic/camera-proxy-go/internal/cache"
	"github.com/atxtraffic/camera-proxy-go/internal/config"
	"github.com/atxtraffic/camera-proxy-go/internal/handler/api"
	"github.com/atxtraffic/camera-proxy-go/internal/logger"
	cMiddleware "github.com/atxtraffic/camera-proxy-go/internal/middleware"
	"github.com/atxtraffic/camera-proxy-go/internal/origin"
	"github.com/atxtraffic/camera-proxy-go/internal/port"
	"github.com/atxtraffic/camera-proxy-go/internal/storage"
	"github.com/atxtraffic/camera-proxy-go/internal/task"
	"github.com/atxtraffic/camera-proxy-go/internal/token"
	cameraSvc "github.com/atxtraffic/camera-proxy-go/internal/usecase/camera"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	r := initRouter(ctx)

	strg := initStorage(ctx, cfg)
	initBucket(ctx, strg, cfg.ArchiveBucket)

	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cache.Options{
			Addr:          cfg.RedisAddr,
			Password:      cfg.RedisPassword,
			UseTLS:        cfg.RedisTLS,
			TLSSkipVerify: cfg.RedisTLSSkipVerify,
		})
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured — caching and detection are disabled")
	}

	verifier := token.NewVerifier(cfg.SigningSecret)
	if cfg.SigningSecret == "" {
		logger.Warn(ctx, "⚠️  SIGNING_SECRET not set — every token will be rejected")
	}

	archiver := archive.NewArchiver(strg, cfg.ArchiveBucket)
	annotator := annotate.NewAnnotator()
	fetcher := origin.NewFetcher(cfg.OriginBaseURL)

	getImageSvc := cameraSvc.NewImageGetter(ca, fetcher, archiver, annotator, dispatcher, cfg.CacheTTLCamera)
	r.Get("/", api.GetCameraImageHandler(verifier, getImageSvc, cfg.FallbackImagePath))
	r.Get("/favicon.ico", api.NotFoundHandler())
	r.Get("/healthz", api.HealthHandler())

	listenRouter(ctx, r, cfg)
}

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cMiddleware.WithRecovery())

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBucket(ctx context.Context, strg port.Storage, bucket string) {
	if err := strg.InitBucket(bucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", bucket, err)
		os.Exit(1)
	}
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")
}
