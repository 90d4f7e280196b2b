package repository

import (
	"context"
	"time"

	"github.com/user/video-generator-service/internal/entity"
)

// RenderStatusRepository stores short-lived render progress records.
type RenderStatusRepository interface {
	// Set stores the status, replacing any previous one for the same render ID.
	Set(ctx context.Context, status *entity.RenderStatus, expiry time.Duration) error
	// Get retrieves the status for a render ID, or ErrStatusNotFound.
	Get(ctx context.Context, renderID string) (*entity.RenderStatus, error)
}
