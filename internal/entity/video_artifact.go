package entity

import "time"

// EncodingSettings describes the parameters actually used to produce a video.
type EncodingSettings struct {
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	FPS             int    `json:"fps"`
	DurationSeconds int    `json:"duration"`
	HeroHoldSeconds int    `json:"hero_hold"`
	TotalFrames     int    `json:"frames"`
	CRF             int    `json:"videoCRF"`
	Codec           string `json:"videoCodec"`
	Preset          string `json:"preset"`
	PixelFormat     string `json:"pixel_format"`
}

// VideoArtifact is the immutable record of a successfully encoded video.
type VideoArtifact struct {
	RenderID        string
	BusinessLabel   string
	Path            string
	FileName        string
	VideoURL        string
	SizeBytes       int64
	SizeReadable    string
	DurationSeconds int
	Settings        EncodingSettings
	DocumentTitle   string
	CreatedAt       time.Time
}

// EncodeJob is the work handed to the encoder.
type EncodeJob struct {
	FramesDir   string
	Pattern     string
	FPS         int
	TotalFrames int
	OutputPath  string
	CRF         int
	Preset      string
	Codec       string
	PixelFormat string
}
