package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/user/video-generator-service/internal/entity"
	"github.com/user/video-generator-service/internal/repository"
)

const (
	partialSuffix = ".partial"
	stderrTailMax = 4096
)

type Encoder struct {
	binary string
}

// NewEncoder creates an encoder that runs the given ffmpeg binary.
// An empty binary resolves "ffmpeg" from PATH.
func NewEncoder(binary string) *Encoder {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Encoder{binary: binary}
}

// Encode runs ffmpeg over the frame sequence and moves the result into place
// only once the process exits cleanly.
func (e *Encoder) Encode(ctx context.Context, job entity.EncodeJob) error {
	partial := job.OutputPath + partialSuffix
	args := buildArgs(job, partial)

	cmd := exec.CommandContext(ctx, e.binary, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrEncodeFailed, err)
	}
	stderr := &tailBuffer{max: stderrTailMax}
	cmd.Stderr = stderr

	slog.Info("Started encoding", "command", e.binary+" "+strings.Join(args, " "))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: start %s: %v", repository.ErrEncodeFailed, e.binary, err)
	}

	reportProgress(stdout, job.TotalFrames, func(percent int) {
		slog.Info("Encoding progress", "percent", percent)
	})

	if err := cmd.Wait(); err != nil {
		os.Remove(partial)
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", repository.ErrEncodeFailed, ctx.Err())
		}
		slog.Error("Encoding failed", "error", err, "stderr", stderr.String())
		return fmt.Errorf("%w: %v: %s", repository.ErrEncodeFailed, err, stderr.String())
	}

	if err := os.Rename(partial, job.OutputPath); err != nil {
		os.Remove(partial)
		return fmt.Errorf("%w: finalize output: %v", repository.ErrEncodeFailed, err)
	}
	slog.Info("Encoding finished", "output", job.OutputPath)
	return nil
}

func buildArgs(job entity.EncodeJob, output string) []string {
	return []string{
		"-y",
		"-framerate", strconv.Itoa(job.FPS),
		"-i", filepath.Join(job.FramesDir, job.Pattern),
		"-c:v", job.Codec,
		"-preset", job.Preset,
		"-crf", strconv.Itoa(job.CRF),
		"-pix_fmt", job.PixelFormat,
		"-movflags", "+faststart",
		"-progress", "pipe:1",
		"-f", "mp4",
		output,
	}
}

// reportProgress consumes ffmpeg -progress output and calls emit each time
// the completed share crosses another 10 percent.
func reportProgress(r io.Reader, totalFrames int, emit func(percent int)) {
	scanner := bufio.NewScanner(r)
	last := 0
	for scanner.Scan() {
		value, ok := strings.CutPrefix(scanner.Text(), "frame=")
		if !ok || totalFrames <= 0 {
			continue
		}
		frame, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			continue
		}
		percent := min(frame*100/totalFrames, 100)
		if percent/10 > last/10 {
			last = percent
			emit(percent)
		}
	}
	// Drain so ffmpeg never blocks on a full pipe.
	io.Copy(io.Discard, r)
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	max int
	buf []byte
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.max; over > 0 {
		b.buf = b.buf[over:]
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.TrimSpace(string(b.buf))
}

// Available reports whether the encoder binary can be resolved.
func (e *Encoder) Available() error {
	if _, err := exec.LookPath(e.binary); err != nil {
		return errors.Join(repository.ErrEncodeFailed, err)
	}
	return nil
}
