package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/SAP-F-2025/assessment-engine/internal/cache"
	"github.com/SAP-F-2025/assessment-engine/internal/catalog"
	"github.com/SAP-F-2025/assessment-engine/internal/config"
	"github.com/SAP-F-2025/assessment-engine/internal/handlers"
	"github.com/SAP-F-2025/assessment-engine/internal/services"
	"github.com/SAP-F-2025/assessment-engine/internal/storage"
	"github.com/SAP-F-2025/assessment-engine/internal/utils"
	"github.com/SAP-F-2025/assessment-engine/internal/validator"
	"github.com/SAP-F-2025/assessment-engine/pkg"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := utils.NewLogger(stdout, cfg.LogLevel, cfg.IsProduction())
	slog.SetDefault(logger)

	// --- Redis ---
	var rdb *redis.Client
	if cfg.Storage.UsesRedis() {
		rdb, err = pkg.NewRedisClient(ctx, cfg)
		if err != nil {
			return err
		}
		logger.Info("Connected to redis")
	}

	// --- Blob store ---
	store, err := openStore(cfg, rdb, logger)
	if err != nil {
		if rdb != nil {
			rdb.Close()
		}
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close store", "error", err)
		}
		// The redis store owns the client it was given.
		if rdb != nil && cfg.Storage.Driver != "redis" {
			rdb.Close()
		}
	}()

	// --- Result cache ---
	resultCache := cache.NewNoopCache()
	if cfg.Storage.ResultCacheEnabled() {
		zlog, err := cache.NewLogger(cfg.IsProduction())
		if err != nil {
			return fmt.Errorf("creating cache logger: %w", err)
		}
		defer zlog.Sync()
		resultCache = cache.NewRedisCache(rdb, zlog)
	}

	// --- Events ---
	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		return fmt.Errorf("creating event publisher: %w", err)
	}
	defer publisher.Close()

	// --- Services ---
	v := validator.New()
	assessments := catalog.New(store, v, logger)
	runner := services.NewRunnerService(assessments, publisher, resultCache, v, logger, services.RunnerConfig{
		TickInterval:  cfg.TickInterval,
		ResultTTL:     cfg.Storage.ResultCacheTTL,
		IdleTimeout:   cfg.SessionIdleTimeout,
		SweepInterval: cfg.SessionSweepInterval,
	})
	defer runner.Shutdown(context.Background())

	// --- HTTP Server ---
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	httpLogger := utils.NewSlogLogger(logger)
	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggerMiddleware(httpLogger), utils.ContextLogger(httpLogger))
	handlers.NewHandlerManager(services.NewAssessmentService(assessments, publisher, logger), runner, httpLogger).SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting http server",
			"addr", srv.Addr,
			"storage_driver", cfg.Storage.Driver,
			"events_enabled", cfg.Events.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStore(cfg *config.Config, rdb *redis.Client, logger *slog.Logger) (storage.BlobStore, error) {
	switch cfg.Storage.Driver {
	case "redis":
		logger.Info("Using redis blob store")
		return storage.NewRedisStore(rdb, logger), nil
	case "postgres":
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		store, err := storage.NewPostgresStore(db, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Using postgres blob store")
		return store, nil
	default:
		logger.Info("Using in-memory blob store")
		return storage.NewMemoryStore(logger), nil
	}
}
