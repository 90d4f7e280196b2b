package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/video-generator-service/internal/entity"
	"github.com/user/video-generator-service/internal/repository"
)

func writeVideo(t *testing.T, dir, name string, size int, modTime time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestLibraryListScansOutputDirNewestFirst(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	writeVideo(t, dir, "roofing_a_1.mp4", 1024*1024, base)
	writeVideo(t, dir, "roofing_b_2.mp4", 2*1024*1024, base.Add(time.Minute))
	writeVideo(t, dir, "roofing_c_3.mp4.partial", 10, base.Add(2*time.Minute))
	writeVideo(t, dir, "notes.txt", 10, base)

	videos, err := NewVideoLibrary(dir, nil, nil).List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "roofing_b_2.mp4", videos[0].FileName)
	assert.Equal(t, "2.00 MB", videos[0].SizeReadable)
	assert.Equal(t, "/videos/roofing_b_2.mp4", videos[0].VideoURL)
	assert.Equal(t, "roofing_a_1.mp4", videos[1].FileName)
}

func TestLibraryListMissingDirIsEmpty(t *testing.T) {
	videos, err := NewVideoLibrary(filepath.Join(t.TempDir(), "none"), nil, nil).List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestLibraryListUsesCatalog(t *testing.T) {
	catalog := &fakeArtifactRepo{saved: []*entity.VideoArtifact{{FileName: "x.mp4"}}}
	videos, err := NewVideoLibrary(t.TempDir(), catalog, nil).List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "x.mp4", videos[0].FileName)
}

func TestLibraryResolveVideo(t *testing.T) {
	dir := t.TempDir()
	writeVideo(t, dir, "roofing_a_1.mp4", 10, time.Now())
	lib := NewVideoLibrary(dir, nil, nil)

	path, err := lib.ResolveVideo("roofing_a_1.mp4")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "roofing_a_1.mp4"), path)

	for _, name := range []string{"", "missing.mp4", "../roofing_a_1.mp4", "a/b.mp4", "..", ".hidden.mp4", "roofing_a_1.mp4.partial"} {
		_, err := lib.ResolveVideo(name)
		assert.ErrorIs(t, err, ErrVideoNotFound, name)
	}
}

func TestLibraryRenderStatus(t *testing.T) {
	statuses := newFakeStatusRepo()
	require.NoError(t, statuses.Set(context.Background(), &entity.RenderStatus{RenderID: "r1", State: entity.RenderEncoding}, time.Minute))
	lib := NewVideoLibrary(t.TempDir(), nil, statuses)

	status, err := lib.RenderStatus(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, entity.RenderEncoding, status.State)

	_, err = lib.RenderStatus(context.Background(), "r2")
	assert.ErrorIs(t, err, repository.ErrStatusNotFound)

	_, err = NewVideoLibrary(t.TempDir(), nil, nil).RenderStatus(context.Background(), "r1")
	assert.ErrorIs(t, err, repository.ErrStatusNotFound)
}

func TestLibraryVideoPrefersCatalog(t *testing.T) {
	dir := t.TempDir()
	writeVideo(t, dir, "roofing_a_1.mp4", 10, time.Now())
	catalog := &fakeArtifactRepo{saved: []*entity.VideoArtifact{{
		RenderID: "r-1", FileName: "roofing_a_1.mp4", DocumentTitle: "Acme", SizeBytes: 10,
	}}}

	video, err := NewVideoLibrary(dir, catalog, nil).Video(context.Background(), "roofing_a_1.mp4")
	require.NoError(t, err)
	assert.Equal(t, "r-1", video.RenderID)
	assert.Equal(t, "Acme", video.DocumentTitle)
}

func TestLibraryVideoFallsBackToDisk(t *testing.T) {
	dir := t.TempDir()
	writeVideo(t, dir, "roofing_b_2.mp4", 1024*1024, time.Now())

	video, err := NewVideoLibrary(dir, &fakeArtifactRepo{}, nil).Video(context.Background(), "roofing_b_2.mp4")
	require.NoError(t, err)
	assert.Empty(t, video.RenderID)
	assert.Equal(t, "1.00 MB", video.SizeReadable)
	assert.Equal(t, VideoURL("roofing_b_2.mp4"), video.VideoURL)
}

func TestLibraryVideoMissing(t *testing.T) {
	catalog := &fakeArtifactRepo{saved: []*entity.VideoArtifact{{FileName: "ghost.mp4"}}}
	lib := NewVideoLibrary(t.TempDir(), catalog, nil)

	// A catalog row without the file behind it is not servable.
	_, err := lib.Video(context.Background(), "ghost.mp4")
	assert.ErrorIs(t, err, ErrVideoNotFound)

	_, err = lib.Video(context.Background(), "../ghost.mp4")
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestLibraryVideoCatalogError(t *testing.T) {
	dir := t.TempDir()
	writeVideo(t, dir, "roofing_a_1.mp4", 10, time.Now())
	catalog := &fakeArtifactRepo{findErr: errors.New("connection reset")}

	_, err := NewVideoLibrary(dir, catalog, nil).Video(context.Background(), "roofing_a_1.mp4")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrVideoNotFound)
}
