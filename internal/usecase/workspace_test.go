package usecase

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceIsolation(t *testing.T) {
	root := t.TempDir()

	a, err := NewWorkspace(root, "render-a")
	require.NoError(t, err)
	b, err := NewWorkspace(root, "render-b")
	require.NoError(t, err)
	assert.NotEqual(t, a.Dir(), b.Dir())

	require.NoError(t, os.WriteFile(filepath.Join(a.Dir(), "frame_0000.png"), []byte("x"), 0o644))

	bFrames, err := b.FrameFiles()
	require.NoError(t, err)
	assert.Empty(t, bFrames)
}

func TestWorkspacePurgeFrames(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir(), "render")
	require.NoError(t, err)

	for _, name := range []string{"frame_0001.png", "frame_0000.png", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(ws.Dir(), name), []byte("x"), 0o644))
	}

	frames, err := ws.FrameFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"frame_0000.png", "frame_0001.png"}, frames)

	removed, err := ws.PurgeFrames()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	frames, err = ws.FrameFiles()
	require.NoError(t, err)
	assert.Empty(t, frames)
	assert.FileExists(t, filepath.Join(ws.Dir(), "notes.txt"))

	require.NoError(t, ws.Remove())
	assert.NoDirExists(t, ws.Dir())
}

func TestNewWorkspaceRequiresID(t *testing.T) {
	_, err := NewWorkspace(t.TempDir(), "")
	assert.Error(t, err)
}
