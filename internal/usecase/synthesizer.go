package usecase

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/user/video-generator-service/internal/entity"
	"github.com/user/video-generator-service/pkg/metrics"
)

var frameEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// SynthesizeFrames decodes one full-page PNG capture and writes one cropped
// viewport-sized frame per schedule entry into dir. It returns the number of
// frames written. Frames are written concurrently, but the call only returns
// once every frame is on disk.
func SynthesizeFrames(ctx context.Context, capture []byte, schedule []entity.FrameOffset, dir string) (int, error) {
	src, err := png.Decode(bytes.NewReader(capture))
	if err != nil {
		return 0, fmt.Errorf("decode full-page capture: %w", err)
	}

	bounds := src.Bounds()
	slog.Info("Cropping frames from full-page capture",
		"frames", len(schedule),
		"capture_width", bounds.Dx(),
		"capture_height", bounds.Dy(),
	)

	logEvery := len(schedule) / 16
	if logEvery < 1 {
		logEvery = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, f := range schedule {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			frame := cropFrame(src, f.ScrollOffsetPx, entity.ViewportWidth, entity.ViewportHeight)
			if err := writeFrame(filepath.Join(dir, entity.FrameFileName(f.Index)), frame); err != nil {
				return fmt.Errorf("write frame %d: %w", f.Index, err)
			}
			metrics.FramesWrittenTotal.Inc()
			if f.Index%logEvery == 0 || f.Index == len(schedule)-1 {
				slog.Debug("Frame written", "frame", f.Index+1, "total", len(schedule), "offset_px", f.ScrollOffsetPx)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(schedule), nil
}

// clampTop keeps a crop of the given height inside a capture of captureHeight.
func clampTop(top, height, captureHeight int) int {
	if limit := captureHeight - height; top > limit {
		top = limit
	}
	if top < 0 {
		top = 0
	}
	return top
}

// cropFrame extracts a width x height rectangle at (0, top). A capture that is
// too small for the rectangle is padded onto a white canvas instead of failing.
func cropFrame(src image.Image, top, width, height int) image.Image {
	b := src.Bounds()
	top = clampTop(top, height, b.Dy())
	rect := image.Rect(b.Min.X, b.Min.Y+top, b.Min.X+width, b.Min.Y+top+height)

	if si, ok := src.(subImager); ok && rect.In(b) {
		return si.SubImage(rect)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Over)
	return dst
}

func writeFrame(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(f, 1<<20)
	if err := frameEncoder.Encode(bw, img); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
