package entity

// RenderRequest is the input accepted by the video pipeline.
type RenderRequest struct {
	BusinessLabel string
	HTMLDocument  string
}
