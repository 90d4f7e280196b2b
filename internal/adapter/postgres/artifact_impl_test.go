package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/video-generator-service/internal/entity"
	"github.com/user/video-generator-service/internal/repository"
)

// newTestRepo connects to TEST_POSTGRES_URL; the tests are skipped without it.
func newTestRepo(t *testing.T) *ArtifactRepoImpl {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_URL")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := NewArtifactRepo(pool)
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

func testArtifact(createdAt time.Time) *entity.VideoArtifact {
	id := uuid.NewString()
	name := "roofing_test_" + id + ".mp4"
	return &entity.VideoArtifact{
		RenderID:        id,
		BusinessLabel:   "Test Roofing",
		Path:            "/videos/" + name,
		FileName:        name,
		VideoURL:        "/videos/" + name,
		SizeBytes:       2_621_440,
		DurationSeconds: 16,
		Settings: entity.EncodingSettings{
			Width: 1920, Height: 1080, FPS: 60, DurationSeconds: 16, HeroHoldSeconds: 1,
			TotalFrames: 960, CRF: 18, Codec: "libx264", Preset: "fast", PixelFormat: "yuv420p",
		},
		DocumentTitle: "Test Roofing | Home",
		CreatedAt:     createdAt.UTC().Truncate(time.Microsecond),
	}
}

func TestArtifactRepoSaveAndFind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	a := testArtifact(time.Now())

	require.NoError(t, repo.Save(ctx, a))
	got, err := repo.FindByFileName(ctx, a.FileName)
	require.NoError(t, err)

	assert.Equal(t, a.RenderID, got.RenderID)
	assert.Equal(t, a.Settings, got.Settings)
	assert.Equal(t, a.SizeBytes, got.SizeBytes)
	assert.True(t, a.CreatedAt.Equal(got.CreatedAt))
}

func TestArtifactRepoListNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	older := testArtifact(time.Now().Add(time.Hour))
	newer := testArtifact(time.Now().Add(2 * time.Hour))
	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	list, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.RenderID, list[0].RenderID)
	assert.Equal(t, older.RenderID, list[1].RenderID)
}

func TestArtifactRepoFindMissing(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.FindByFileName(context.Background(), "missing.mp4")
	assert.ErrorIs(t, err, repository.ErrArtifactNotFound)
}
