package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/video-generator-service/internal/entity"
	"github.com/user/video-generator-service/internal/repository"
)

// newTestRepo connects to TEST_REDIS_ADDR; the tests are skipped without it.
func newTestRepo(t *testing.T) (*StatusRepoImpl, *redis.Client) {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return NewStatusRepo(client), client
}

func TestStatusRepoRoundTrip(t *testing.T) {
	repo, client := newTestRepo(t)
	ctx := context.Background()
	status := &entity.RenderStatus{
		RenderID:      uuid.NewString(),
		BusinessLabel: "Acme",
		State:         entity.RenderEncoding,
		UpdatedAt:     time.Now().UTC().Truncate(time.Second),
	}

	require.NoError(t, repo.Set(ctx, status, time.Minute))
	got, err := repo.Get(ctx, status.RenderID)
	require.NoError(t, err)
	assert.Equal(t, status.State, got.State)
	assert.Equal(t, status.BusinessLabel, got.BusinessLabel)
	assert.True(t, status.UpdatedAt.Equal(got.UpdatedAt))

	ttl, err := client.TTL(ctx, renderStatusPrefix+status.RenderID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestStatusRepoMissing(t *testing.T) {
	repo, _ := newTestRepo(t)
	_, err := repo.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrStatusNotFound)
}

func TestGenerateKey(t *testing.T) {
	repo := NewStatusRepo(nil)
	assert.Equal(t, "render:status:abc", repo.generateKey("abc"))
}
