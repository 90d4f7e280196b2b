package repository

import (
	"context"

	"github.com/user/video-generator-service/internal/entity"
)

// SurfaceLauncher opens isolated rendering surfaces. Every call yields a fresh
// browser instance bound to ctx; cancelling ctx tears it down.
type SurfaceLauncher interface {
	Open(ctx context.Context) (Surface, error)
}

// Surface is a single-use rendering surface. Stabilize mutates the loaded
// document irreversibly, so a surface must not be reused across requests.
type Surface interface {
	// Stabilize loads the document and makes its visual state scroll-crop safe.
	Stabilize(html string) error
	// Probe measures the stabilized document.
	Probe() (entity.ProbeReport, error)
	// CaptureFullPage returns one PNG screenshot of the whole document.
	CaptureFullPage() ([]byte, error)
	// Close releases the browser. It is safe to call more than once.
	Close() error
}
