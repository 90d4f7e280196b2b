package usecase

import (
	"fmt"
	"sync"
	"time"

	"github.com/user/video-generator-service/pkg/utils"
)

// artifactNamer hands out <prefix>_<label>_<millis>.mp4 names. The millisecond
// component is strictly increasing across calls on the same namer.
type artifactNamer struct {
	prefix string
	now    func() time.Time

	mu   sync.Mutex
	last int64
}

func newArtifactNamer(prefix string, now func() time.Time) *artifactNamer {
	return &artifactNamer{prefix: prefix, now: now}
}

func (n *artifactNamer) next(label string) string {
	n.mu.Lock()
	ms := n.now().UnixMilli()
	if ms <= n.last {
		ms = n.last + 1
	}
	n.last = ms
	n.mu.Unlock()

	return fmt.Sprintf("%s_%s_%d.mp4", n.prefix, utils.SanitizeLabel(label), ms)
}
