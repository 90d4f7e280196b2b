package usecase

import (
	"math"

	"github.com/user/video-generator-service/internal/entity"
)

// BuildFrameSchedule maps every output frame to a crop offset.
//
// The first fps*heroHoldSeconds frames stay at the top of the page. The
// remaining frames move linearly from 0 to maxScrollPx, so the last frame
// always shows the bottom of the page when there is more than one scroll
// frame. Offsets are rounded half away from zero.
func BuildFrameSchedule(fps, durationSeconds, heroHoldSeconds, maxScrollPx int) []entity.FrameOffset {
	totalFrames := fps * durationSeconds
	if totalFrames <= 0 {
		return nil
	}
	if maxScrollPx < 0 {
		maxScrollPx = 0
	}

	heroFrames := fps * heroHoldSeconds
	if heroFrames < 0 {
		heroFrames = 0
	}
	scrollFrames := totalFrames - heroFrames

	schedule := make([]entity.FrameOffset, totalFrames)
	for i := range schedule {
		offset := 0
		if i >= heroFrames && scrollFrames > 1 {
			progress := float64(i-heroFrames) / float64(scrollFrames-1)
			offset = int(math.Round(float64(maxScrollPx) * progress))
		}
		schedule[i] = entity.FrameOffset{Index: i, ScrollOffsetPx: offset}
	}
	return schedule
}
