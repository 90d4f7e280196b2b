package entity

import "time"

type RenderState string

const (
	RenderPending      RenderState = "pending"
	RenderStabilizing  RenderState = "stabilizing"
	RenderSynthesizing RenderState = "synthesizing"
	RenderEncoding     RenderState = "encoding"
	RenderCompleted    RenderState = "completed"
	RenderFailed       RenderState = "failed"
)

// RenderStatus tracks the progress of one render request.
type RenderStatus struct {
	RenderID      string      `json:"render_id"`
	BusinessLabel string      `json:"business_name"`
	State         RenderState `json:"state"`
	FileName      string      `json:"file_name,omitempty"`
	FailureReason string      `json:"failure_reason,omitempty"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
