package entity

import "fmt"

// FramePattern is the printf pattern used both to write frames and to feed the encoder.
const FramePattern = "frame_%04d.png"

// FramePrefix is shared by every frame file name.
const FramePrefix = "frame_"

// MaxFrames is the largest sequence whose names still sort lexicographically by index.
const MaxFrames = 9999

// FrameOffset is one entry of a frame schedule.
type FrameOffset struct {
	Index          int
	ScrollOffsetPx int
}

// FrameFileName returns the file name of the frame with the given index.
func FrameFileName(index int) string {
	return fmt.Sprintf(FramePattern, index)
}
