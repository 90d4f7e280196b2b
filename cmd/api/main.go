package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/user/video-generator-service/internal/adapter/chromedp_surface"
	"github.com/user/video-generator-service/internal/adapter/ffmpeg"
	"github.com/user/video-generator-service/internal/adapter/postgres"
	redis_adapter "github.com/user/video-generator-service/internal/adapter/redis"
	"github.com/user/video-generator-service/internal/delivery/http/handler"
	"github.com/user/video-generator-service/internal/delivery/http/router"
	"github.com/user/video-generator-service/internal/usecase"
	"github.com/user/video-generator-service/pkg/config"
	"github.com/user/video-generator-service/pkg/logger"
	"github.com/user/video-generator-service/pkg/metrics"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Could not load config", "error", err)
		os.Exit(1)
	}

	// --- Logger ---
	logLevel := logger.ParseLevel(cfg.LogLevel)
	logger.Init(os.Stdout, logLevel)
	slog.Info("Logger initialized", "level", logLevel.String())

	// --- Metrics ---
	metrics.Init()
	slog.Info("Metrics initialized")

	// --- Database Connections ---
	ctx := context.Background()

	// PostgreSQL
	dbpool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	slog.Info("PostgreSQL connection pool established")

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("Unable to connect to Redis", "error", err)
		os.Exit(1)
	}
	slog.Info("Redis connection established")

	// --- Repositories ---
	artifactRepo := postgres.NewArtifactRepo(dbpool)
	if err := artifactRepo.EnsureSchema(ctx); err != nil {
		slog.Error("Unable to prepare artifact catalog", "error", err)
		os.Exit(1)
	}
	statusRepo := redis_adapter.NewStatusRepo(rdb)

	// --- Rendering and encoding ---
	launcher := chromedp_surface.NewChromedpLauncher(cfg.ChromePath, chromedp_surface.Timings{
		SettleDelay:   cfg.SettleDelay(),
		EmbedTimeout:  cfg.EmbedTimeout(),
		EmbedDelay:    cfg.EmbedDelay(),
		MutationDelay: cfg.MutationDelay(),
	})
	encoder := ffmpeg.NewEncoder(cfg.FFmpegPath)
	if err := encoder.Available(); err != nil {
		slog.Warn("ffmpeg not found, renders will fail until it is installed", "path", cfg.FFmpegPath, "error", err)
	}

	// --- Use Cases ---
	generator := usecase.NewVideoGenerator(launcher, encoder, usecase.Settings{
		FPS:                 cfg.VideoFPS,
		DurationSeconds:     cfg.VideoDurationSeconds,
		HeroHoldSeconds:     cfg.HeroHoldSeconds,
		CRF:                 cfg.VideoCRF,
		Preset:              cfg.VideoPreset,
		OutputDir:           cfg.OutputDir,
		WorkDir:             cfg.WorkDir,
		FilePrefix:          cfg.FilePrefix,
		MaxConcurrent:       cfg.MaxConcurrentRenders,
		RenderTimeout:       cfg.RenderTimeout(),
		StatusTTL:           cfg.StatusTTL(),
		KeepFramesOnFailure: cfg.KeepFramesOnFailure,
	},
		usecase.WithArtifactRepository(artifactRepo),
		usecase.WithStatusRepository(statusRepo),
	)
	library := usecase.NewVideoLibrary(cfg.OutputDir, artifactRepo, statusRepo)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(generator, library, cfg.ServerPort, map[string]handler.HealthCheck{
		"postgres": dbpool.Ping,
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	})
	httpRouter := router.New(apiHandler)

	server := &http.Server{
		Addr:        ":" + cfg.ServerPort,
		Handler:     httpRouter,
		ReadTimeout: 30 * time.Second,
		// A render holds the request open until the video is encoded.
		WriteTimeout: cfg.RenderTimeout() + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		slog.Info("Starting server", "port", cfg.ServerPort, "output_dir", cfg.OutputDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server exiting")
}
