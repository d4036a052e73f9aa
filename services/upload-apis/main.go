package main

import (
	"context"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/config"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/pubsub"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/service"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/store/blob"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/store/cache"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/store/document"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/transport"
)

var (
	pool *ants.Pool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadCfg(ctx)
	if err != nil {
		slog.Error("Failed to read config", "error", err)
		return
	}

	if err := initialWorkerPool(cfg.PoolSize); err != nil {
		slog.Error("Failed to initialize worker pool", "error", err)
		return
	}

	redis, err := cache.NewRedisCache(cfg.CacheCfg)
	if err != nil {
		slog.Error("Failed to initialize redis cache", "error", err)
		return
	}

	mongo, err := document.NewMongoStore(cfg.DocumentCfg)
	if err != nil {
		slog.Error("Failed to connect to document store", "error", err)
		return
	}

	// Lifecycle events and source archival are optional deployments.
	var events pubsub.TaskEventProducer
	if cfg.KafkaAddress != "" {
		events, err = pubsub.NewProducer(cfg)
		if err != nil {
			slog.Error("Failed to initialize kafka producer", "error", err)
			return
		}
	}

	var archive blob.ArchiveStorage
	if cfg.ArchiveBucket != "" {
		archive, err = blob.NewGoogleCloudStorage(cfg.ArchiveBucket)
		if err != nil {
			slog.Error("Failed to connect to blob storage", "error", err)
			return
		}
	}

	us := service.NewUploadService(mongo, mongo, redis, events, archive, pool, cfg.IngestCfg)
	uh := transport.NewUploadHandler(us)

	httpServer := transport.NewHttpServer(cfg)
	httpServer.SetupRoute(uh)
	httpServer.Start()

	// Gracefully shutdown
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shutdown http server", "error", err)
	}

	pool.Release()

	if events != nil {
		events.Shutdown()
	}

	if archive != nil {
		if err := archive.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to shutdown blob storage", "error", err)
		}
	}

	if err := mongo.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shutdown document store", "error", err)
	}

	if err := redis.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shutdown cache", "error", err)
	}
}

func initialWorkerPool(size int) error {
	var once sync.Once
	var initErr error

	once.Do(func() {
		pool, initErr = ants.NewPool(
			size,
			ants.WithOptions(ants.Options{
				// Pre-allocate goroutines on startup for better performance
				PreAlloc: true,

				// Maximum capacity for blocking mode
				// If exceeded, Submit() will block until a worker is free
				MaxBlockingTasks: 1000,

				// Panic handler - prevent one task from crashing entire pool
				PanicHandler: func(err any) {
					slog.Error("[POOL-PANIC] ingestion task crashed", "panic", err)
				},

				// Worker idle timeout - kill idle workers after this duration
				ExpiryDuration: 10 * time.Second,
			}),
		)

		if initErr != nil {
			return
		}
	})

	return initErr
}
