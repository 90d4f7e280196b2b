package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/video-generator-service/internal/entity"
	"github.com/user/video-generator-service/internal/repository"
)

const renderStatusPrefix = "render:status:"

var _ repository.RenderStatusRepository = (*StatusRepoImpl)(nil)

// StatusRepoImpl provides a concrete implementation for the RenderStatusRepository interface using Redis.
type StatusRepoImpl struct {
	client *redis.Client
}

// NewStatusRepo creates a new instance of StatusRepoImpl.
func NewStatusRepo(client *redis.Client) *StatusRepoImpl {
	return &StatusRepoImpl{client: client}
}

func (r *StatusRepoImpl) generateKey(renderID string) string {
	return renderStatusPrefix + renderID
}

// Set stores the status as JSON with an expiry.
func (r *StatusRepoImpl) Set(ctx context.Context, status *entity.RenderStatus, expiry time.Duration) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return r.client.SetEx(ctx, r.generateKey(status.RenderID), payload, expiry).Err()
}

// Get loads the status for renderID.
func (r *StatusRepoImpl) Get(ctx context.Context, renderID string) (*entity.RenderStatus, error) {
	payload, err := r.client.Get(ctx, r.generateKey(renderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrStatusNotFound
	}
	if err != nil {
		return nil, err
	}

	var status entity.RenderStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
