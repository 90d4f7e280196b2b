package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/user/video-generator-service/internal/entity"
	"github.com/user/video-generator-service/internal/repository"
	"github.com/user/video-generator-service/pkg/htmldoc"
	"github.com/user/video-generator-service/pkg/metrics"
)

var (
	ErrInvalidRequest = errors.New("invalid render request")
)

const (
	codecH264        = "libx264"
	pixelFormatYUV   = "yuv420p"
	defaultStatusTTL = 24 * time.Hour
)

// VideoGenerator renders HTML documents into scrolling videos.
type VideoGenerator interface {
	Generate(ctx context.Context, req entity.RenderRequest) (*entity.VideoArtifact, error)
}

// Settings configures the video pipeline.
type Settings struct {
	FPS                 int
	DurationSeconds     int
	HeroHoldSeconds     int
	CRF                 int
	Preset              string
	OutputDir           string
	WorkDir             string
	FilePrefix          string
	MaxConcurrent       int
	RenderTimeout       time.Duration
	StatusTTL           time.Duration
	KeepFramesOnFailure bool
}

// Option customizes a video generator.
type Option func(*videoGeneratorUseCase)

// WithArtifactRepository records every produced video in the catalog.
func WithArtifactRepository(repo repository.ArtifactRepository) Option {
	return func(uc *videoGeneratorUseCase) { uc.artifactRepo = repo }
}

// WithStatusRepository publishes render progress.
func WithStatusRepository(repo repository.RenderStatusRepository) Option {
	return func(uc *videoGeneratorUseCase) { uc.statusRepo = repo }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(uc *videoGeneratorUseCase) { uc.now = now }
}

// WithIDGenerator replaces the render ID generator.
func WithIDGenerator(gen func() string) Option {
	return func(uc *videoGeneratorUseCase) { uc.newID = gen }
}

type videoGeneratorUseCase struct {
	launcher     repository.SurfaceLauncher
	encoder      repository.VideoEncoder
	artifactRepo repository.ArtifactRepository
	statusRepo   repository.RenderStatusRepository
	settings     Settings
	slots        *semaphore.Weighted
	namer        *artifactNamer
	now          func() time.Time
	newID        func() string
}

// NewVideoGenerator creates the render pipeline use case.
func NewVideoGenerator(
	launcher repository.SurfaceLauncher,
	encoder repository.VideoEncoder,
	settings Settings,
	opts ...Option,
) VideoGenerator {
	if settings.MaxConcurrent <= 0 {
		settings.MaxConcurrent = 1
	}
	if settings.StatusTTL <= 0 {
		settings.StatusTTL = defaultStatusTTL
	}
	if settings.WorkDir == "" {
		settings.WorkDir = os.TempDir()
	}

	uc := &videoGeneratorUseCase{
		launcher: launcher,
		encoder:  encoder,
		settings: settings,
		slots:    semaphore.NewWeighted(int64(settings.MaxConcurrent)),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	uc.namer = newArtifactNamer(settings.FilePrefix, uc.now)
	return uc
}

// Generate runs the whole pipeline for one request: stabilize, probe, capture,
// synthesize, encode and report. Either a complete artifact is returned or an error.
func (uc *videoGeneratorUseCase) Generate(ctx context.Context, req entity.RenderRequest) (*entity.VideoArtifact, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	renderID := uc.newID()
	log := slog.With("render_id", renderID, "business", req.BusinessLabel)

	uc.publishStatus(ctx, &entity.RenderStatus{RenderID: renderID, BusinessLabel: req.BusinessLabel, State: entity.RenderPending})

	if err := uc.slots.Acquire(ctx, 1); err != nil {
		err = fmt.Errorf("waiting for render slot: %w", err)
		uc.recordFailure(ctx, renderID, req.BusinessLabel, err)
		return nil, err
	}
	defer uc.slots.Release(1)
	metrics.RendersInFlight.Inc()
	defer metrics.RendersInFlight.Dec()

	if uc.settings.RenderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.settings.RenderTimeout)
		defer cancel()
	}

	startTime := time.Now()
	log.Info("Starting video generation")

	artifact, err := uc.run(ctx, log, renderID, req)
	if err != nil {
		log.Error("Video generation failed", "error", err, "duration_ms", time.Since(startTime).Milliseconds())
		uc.recordFailure(ctx, renderID, req.BusinessLabel, err)
		return nil, err
	}

	metrics.RendersTotal.WithLabelValues("success", "").Inc()
	uc.publishStatus(ctx, &entity.RenderStatus{
		RenderID:      renderID,
		BusinessLabel: req.BusinessLabel,
		State:         entity.RenderCompleted,
		FileName:      artifact.FileName,
	})
	log.Info("Video generation complete",
		"file", artifact.FileName,
		"size", artifact.SizeReadable,
		"duration_seconds", artifact.DurationSeconds,
		"elapsed_ms", time.Since(startTime).Milliseconds(),
	)
	return artifact, nil
}

func (uc *videoGeneratorUseCase) run(ctx context.Context, log *slog.Logger, renderID string, req entity.RenderRequest) (artifact *entity.VideoArtifact, err error) {
	summary, sumErr := htmldoc.Summarize(req.HTMLDocument)
	if sumErr != nil {
		log.Warn("Could not inspect document", "error", sumErr)
	} else {
		log.Info("Document received",
			"title", summary.Title,
			"sections", summary.Sections,
			"iframes", summary.Iframes,
			"map_embeds", summary.MapEmbeds,
			"images", summary.Images,
			"scripts", summary.Scripts,
		)
	}

	ws, err := NewWorkspace(uc.settings.WorkDir, renderID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil && uc.settings.KeepFramesOnFailure {
			log.Warn("Keeping frames for inspection", "dir", ws.Dir())
			return
		}
		if rmErr := ws.Remove(); rmErr != nil {
			log.Warn("Failed to remove frame workspace", "dir", ws.Dir(), "error", rmErr)
		}
	}()
	if stale, purgeErr := ws.PurgeFrames(); purgeErr != nil {
		log.Warn("Failed to clear stale frames", "dir", ws.Dir(), "error", purgeErr)
	} else if stale > 0 {
		log.Info("Cleared stale frames", "count", stale)
	}

	uc.publishStatus(ctx, &entity.RenderStatus{RenderID: renderID, BusinessLabel: req.BusinessLabel, State: entity.RenderStabilizing})
	capture, pageMetrics, err := uc.captureDocument(ctx, log, req.HTMLDocument)
	if err != nil {
		return nil, err
	}

	uc.publishStatus(ctx, &entity.RenderStatus{RenderID: renderID, BusinessLabel: req.BusinessLabel, State: entity.RenderSynthesizing})
	schedule := BuildFrameSchedule(uc.settings.FPS, uc.settings.DurationSeconds, uc.settings.HeroHoldSeconds, pageMetrics.MaxScrollPx)
	log.Info("Generating frames",
		"total_frames", len(schedule),
		"fps", uc.settings.FPS,
		"duration_seconds", uc.settings.DurationSeconds,
		"hero_frames", uc.settings.FPS*uc.settings.HeroHoldSeconds,
	)

	stageStart := time.Now()
	written, err := SynthesizeFrames(ctx, capture, schedule, ws.Dir())
	if err != nil {
		return nil, fmt.Errorf("synthesize frames: %w", err)
	}
	metrics.RenderStageDuration.WithLabelValues("synthesize").Observe(time.Since(stageStart).Seconds())
	log.Info("All frames captured successfully", "frames", written)

	if err := os.MkdirAll(uc.settings.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	fileName := uc.namer.next(req.BusinessLabel)
	videoPath := filepath.Join(uc.settings.OutputDir, fileName)
	settings := uc.encodingSettings(len(schedule))

	uc.publishStatus(ctx, &entity.RenderStatus{RenderID: renderID, BusinessLabel: req.BusinessLabel, State: entity.RenderEncoding})
	log.Info("Creating video", "file", fileName)
	stageStart = time.Now()
	err = uc.encoder.Encode(ctx, entity.EncodeJob{
		FramesDir:   ws.Dir(),
		Pattern:     entity.FramePattern,
		FPS:         settings.FPS,
		TotalFrames: settings.TotalFrames,
		OutputPath:  videoPath,
		CRF:         settings.CRF,
		Preset:      settings.Preset,
		Codec:       settings.Codec,
		PixelFormat: settings.PixelFormat,
	})
	if err != nil {
		return nil, err
	}
	metrics.RenderStageDuration.WithLabelValues("encode").Observe(time.Since(stageStart).Seconds())

	if removed, purgeErr := ws.PurgeFrames(); purgeErr != nil {
		log.Warn("Failed to clean up frames", "error", purgeErr)
	} else {
		log.Info("Cleaned up temporary frames", "count", removed)
	}

	info, err := os.Stat(videoPath)
	if err != nil {
		return nil, fmt.Errorf("stat video: %w", err)
	}

	artifact = BuildArtifact(renderID, req.BusinessLabel, videoPath, fileName, info.Size(), settings, uc.now())
	artifact.DocumentTitle = summary.Title

	if uc.artifactRepo != nil {
		if saveErr := uc.artifactRepo.Save(ctx, artifact); saveErr != nil {
			// The video exists on disk; a missing catalog row only hides it from listings.
			log.Warn("Failed to record video in catalog", "file", fileName, "error", saveErr)
		}
	}
	return artifact, nil
}

// captureDocument owns the browser for one render: it is opened, stabilized,
// probed and captured, then closed on every exit path.
func (uc *videoGeneratorUseCase) captureDocument(ctx context.Context, log *slog.Logger, html string) ([]byte, entity.PageMetrics, error) {
	stageStart := time.Now()

	surface, err := uc.launcher.Open(ctx)
	if err != nil {
		return nil, entity.PageMetrics{}, err
	}
	defer func() {
		if closeErr := surface.Close(); closeErr != nil {
			log.Warn("Failed to close browser", "error", closeErr)
		}
	}()

	if err := surface.Stabilize(html); err != nil {
		return nil, entity.PageMetrics{}, err
	}
	metrics.RenderStageDuration.WithLabelValues("stabilize").Observe(time.Since(stageStart).Seconds())

	report, err := surface.Probe()
	if err != nil {
		return nil, entity.PageMetrics{}, err
	}
	pageMetrics := entity.NewPageMetrics(report.PageHeight)
	log.Info("Page geometry measured",
		"page_height", report.PageHeight,
		"body_height", report.BodyHeight,
		"html_height", report.HTMLHeight,
		"client_height", report.ClientHeight,
		"max_scroll", pageMetrics.MaxScrollPx,
		"can_scroll", report.CanScroll,
		"test_scroll", fmt.Sprintf("%d -> %d", report.InitialScroll, report.TestScroll),
	)
	if pageMetrics.MaxScrollPx == 0 {
		log.Warn("Page has no scroll range, video will be static", "page_height", report.PageHeight)
	}

	stageStart = time.Now()
	capture, err := surface.CaptureFullPage()
	if err != nil {
		return nil, entity.PageMetrics{}, err
	}
	metrics.RenderStageDuration.WithLabelValues("capture").Observe(time.Since(stageStart).Seconds())
	log.Info("Full page screenshot captured", "bytes", len(capture))

	return capture, pageMetrics, nil
}

func (uc *videoGeneratorUseCase) encodingSettings(totalFrames int) entity.EncodingSettings {
	return entity.EncodingSettings{
		Width:           entity.ViewportWidth,
		Height:          entity.ViewportHeight,
		FPS:             uc.settings.FPS,
		DurationSeconds: uc.settings.DurationSeconds,
		HeroHoldSeconds: uc.settings.HeroHoldSeconds,
		TotalFrames:     totalFrames,
		CRF:             uc.settings.CRF,
		Codec:           codecH264,
		Preset:          uc.settings.Preset,
		PixelFormat:     pixelFormatYUV,
	}
}

func (uc *videoGeneratorUseCase) recordFailure(ctx context.Context, renderID, label string, renderErr error) {
	metrics.RendersTotal.WithLabelValues("failure", errorType(renderErr)).Inc()
	uc.publishStatus(ctx, &entity.RenderStatus{
		RenderID:      renderID,
		BusinessLabel: label,
		State:         entity.RenderFailed,
		FailureReason: renderErr.Error(),
	})
}

// publishStatus is best-effort: a status store outage never fails a render.
func (uc *videoGeneratorUseCase) publishStatus(ctx context.Context, status *entity.RenderStatus) {
	if uc.statusRepo == nil {
		return
	}
	status.UpdatedAt = uc.now()
	// The render context may already be cancelled when recording a failure.
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := uc.statusRepo.Set(storeCtx, status, uc.settings.StatusTTL); err != nil {
		slog.Warn("Failed to publish render status", "render_id", status.RenderID, "state", status.State, "error", err)
	}
}

func validateRequest(req entity.RenderRequest) error {
	if req.BusinessLabel == "" {
		return fmt.Errorf("%w: business_name is required", ErrInvalidRequest)
	}
	if req.HTMLDocument == "" {
		return fmt.Errorf("%w: html_content is required", ErrInvalidRequest)
	}
	return nil
}

func errorType(err error) string {
	switch {
	case errors.Is(err, repository.ErrSurfaceLoad):
		return "load"
	case errors.Is(err, repository.ErrCaptureFailed):
		return "capture"
	case errors.Is(err, repository.ErrEncodeFailed):
		return "encode"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "unknown"
	}
}
