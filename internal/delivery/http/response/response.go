package response

import "time"

type SettingsUsed struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	FPS        int    `json:"fps"`
	Duration   int    `json:"duration"`
	Frames     int    `json:"frames"`
	VideoCRF   int    `json:"videoCRF"`
	VideoCodec string `json:"videoCodec"`
}

type GenerateVideoResponse struct {
	Success          bool         `json:"success"`
	Message          string       `json:"message"`
	BusinessName     string       `json:"business_name"`
	RenderID         string       `json:"render_id"`
	VideoURL         string       `json:"video_url"`
	FileName         string       `json:"file_name"`
	FileSize         int64        `json:"file_size"`
	FileSizeReadable string       `json:"file_size_readable"`
	DurationEstimate int          `json:"duration_estimate"`
	SettingsUsed     SettingsUsed `json:"settings_used"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type VideoEntry struct {
	FileName string    `json:"filename"`
	Size     string    `json:"size"`
	Created  time.Time `json:"created"`
	URL      string    `json:"url"`
}

// VideoDetailResponse adds catalog details to a list entry. Videos found only
// on disk carry no render fields.
type VideoDetailResponse struct {
	VideoEntry
	SizeBytes       int64         `json:"size_bytes"`
	RenderID        string        `json:"render_id,omitempty"`
	BusinessName    string        `json:"business_name,omitempty"`
	DocumentTitle   string        `json:"document_title,omitempty"`
	DurationSeconds int           `json:"duration,omitempty"`
	SettingsUsed    *SettingsUsed `json:"settings_used,omitempty"`
}

type VideoListResponse struct {
	Videos []VideoEntry `json:"videos"`
	Total  int          `json:"total"`
}

// RenderStatusResponse mirrors entity.RenderStatus.
type RenderStatusResponse struct {
	RenderID      string    `json:"render_id"`
	BusinessName  string    `json:"business_name"`
	State         string    `json:"state"` // "pending", "stabilizing", "synthesizing", "encoding", "completed", "failed"
	FileName      string    `json:"file_name,omitempty"`
	VideoURL      string    `json:"video_url,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Port      string            `json:"port"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}
