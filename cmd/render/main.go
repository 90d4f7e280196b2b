package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/user/video-generator-service/internal/adapter/chromedp_surface"
	"github.com/user/video-generator-service/internal/adapter/ffmpeg"
	"github.com/user/video-generator-service/internal/entity"
	"github.com/user/video-generator-service/internal/usecase"
	"github.com/user/video-generator-service/pkg/config"
	"github.com/user/video-generator-service/pkg/logger"
	"github.com/user/video-generator-service/pkg/metrics"
)

type result struct {
	RenderID         string                  `json:"render_id"`
	BusinessName     string                  `json:"business_name"`
	Path             string                  `json:"path"`
	FileName         string                  `json:"file_name"`
	FileSize         int64                   `json:"file_size"`
	FileSizeReadable string                  `json:"file_size_readable"`
	DurationEstimate int                     `json:"duration_estimate"`
	DocumentTitle    string                  `json:"document_title,omitempty"`
	SettingsUsed     entity.EncodingSettings `json:"settings_used"`
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s -label <business name> -html <file> [-out dir]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage

	var label, htmlPath, outDir string
	flag.StringVar(&label, "label", "", "business name used in the output file name")
	flag.StringVar(&htmlPath, "html", "", "path to the HTML document to render")
	flag.StringVar(&outDir, "out", "", "output directory (defaults to OUTPUT_DIR)")
	flag.Parse()

	if label == "" || htmlPath == "" {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if outDir != "" {
		cfg.OutputDir = outDir
	}
	// Logs go to stderr so stdout carries only the result.
	logger.Init(os.Stderr, logger.ParseLevel(cfg.LogLevel))
	metrics.Init()

	html, err := os.ReadFile(htmlPath)
	if err != nil {
		slog.Error("Could not read HTML document", "path", htmlPath, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	launcher := chromedp_surface.NewChromedpLauncher(cfg.ChromePath, chromedp_surface.Timings{
		SettleDelay:   cfg.SettleDelay(),
		EmbedTimeout:  cfg.EmbedTimeout(),
		EmbedDelay:    cfg.EmbedDelay(),
		MutationDelay: cfg.MutationDelay(),
	})
	generator := usecase.NewVideoGenerator(launcher, ffmpeg.NewEncoder(cfg.FFmpegPath), usecase.Settings{
		FPS:                 cfg.VideoFPS,
		DurationSeconds:     cfg.VideoDurationSeconds,
		HeroHoldSeconds:     cfg.HeroHoldSeconds,
		CRF:                 cfg.VideoCRF,
		Preset:              cfg.VideoPreset,
		OutputDir:           cfg.OutputDir,
		WorkDir:             cfg.WorkDir,
		FilePrefix:          cfg.FilePrefix,
		MaxConcurrent:       1,
		RenderTimeout:       cfg.RenderTimeout(),
		KeepFramesOnFailure: cfg.KeepFramesOnFailure,
	})

	artifact, err := generator.Generate(ctx, entity.RenderRequest{BusinessLabel: label, HTMLDocument: string(html)})
	if err != nil {
		slog.Error("Video generation failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result{
		RenderID:         artifact.RenderID,
		BusinessName:     artifact.BusinessLabel,
		Path:             artifact.Path,
		FileName:         artifact.FileName,
		FileSize:         artifact.SizeBytes,
		FileSizeReadable: artifact.SizeReadable,
		DurationEstimate: artifact.DurationSeconds,
		DocumentTitle:    artifact.DocumentTitle,
		SettingsUsed:     artifact.Settings,
	}); err != nil {
		slog.Error("Failed to write result", "error", err)
		os.Exit(1)
	}
}
