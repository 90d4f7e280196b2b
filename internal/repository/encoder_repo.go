package repository

import (
	"context"

	"github.com/user/video-generator-service/internal/entity"
)

// VideoEncoder turns an ordered frame sequence into a single video file.
type VideoEncoder interface {
	// Encode blocks until the output file is complete or the encoder fails.
	Encode(ctx context.Context, job entity.EncodeJob) error
}
