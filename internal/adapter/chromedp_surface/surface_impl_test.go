package chromedp_surface

import (
	"bytes"
	"context"
	"image/png"
	"os/exec"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quickTimings = Timings{EmbedTimeout: 300 * time.Millisecond}

func requireChrome(t *testing.T) {
	t.Helper()
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return
		}
	}
	t.Skip("no Chrome binary available")
}

const tallPage = `<!DOCTYPE html>
<html><head><style>
  body { margin: 0; }
  .nav { position: fixed; top: 0; height: 80px; width: 100%; background: red; }
  .block { height: 5080px; background: linear-gradient(#fff, #000); }
  .reveal-element { opacity: 0; }
</style></head>
<body>
  <div class="nav">menu</div>
  <div class="block"></div>
  <section class="reveal-element" style="opacity:0">late</section>
</body></html>`

func TestSurfaceStabilizeProbeCapture(t *testing.T) {
	requireChrome(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := NewChromedpLauncher("", quickTimings).Open(ctx)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Stabilize(tallPage))

	report, err := s.Probe()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, report.PageHeight, 5080)
	assert.True(t, report.CanScroll)
	assert.Equal(t, 0, report.InitialScroll)

	var navPosition string
	require.NoError(t, chromedp.Run(s.(*surface).ctx,
		chromedp.Evaluate(`getComputedStyle(document.querySelector('.nav')).position`, &navPosition)))
	assert.Equal(t, "static", navPosition)

	capture, err := s.CaptureFullPage()
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(capture))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, img.Bounds().Dy(), 5080)
	assert.Equal(t, 1920, img.Bounds().Dx())
}

func TestSurfaceShortPage(t *testing.T) {
	requireChrome(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := NewChromedpLauncher("", quickTimings).Open(ctx)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Stabilize(`<html><body style="margin:0"><div style="height:800px">short</div></body></html>`))
	report, err := s.Probe()
	require.NoError(t, err)
	assert.Equal(t, 1080, report.PageHeight)
	assert.False(t, report.CanScroll)
}

func TestBestEffortWaitAbsorbsTimeout(t *testing.T) {
	requireChrome(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := NewChromedpLauncher("", quickTimings).Open(ctx)
	require.NoError(t, err)
	defer s.Close()

	start := time.Now()
	err = chromedp.Run(s.(*surface).ctx, bestEffortWait("never", "false", 200*time.Millisecond))
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
}

func TestCloseIsIdempotent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	s := &surface{ctx: ctx, cancel: func() { calls++ }}

	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
	assert.Equal(t, 1, calls)
}
