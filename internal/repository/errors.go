package repository

import "errors"

var (
	// ErrSurfaceLoad is returned when the browser cannot be launched or fails to load the document.
	ErrSurfaceLoad = errors.New("rendering surface failed to load document")
	// ErrCaptureFailed is returned when the full-page capture cannot be taken.
	ErrCaptureFailed = errors.New("full-page capture failed")
	// ErrEncodeFailed is returned when the encoder process reports failure.
	ErrEncodeFailed = errors.New("video encoding failed")
	// ErrArtifactNotFound is returned by catalog lookups that match nothing.
	ErrArtifactNotFound = errors.New("video artifact not found")
	// ErrStatusNotFound is returned when no status is stored for a render ID.
	ErrStatusNotFound = errors.New("render status not found")
)
