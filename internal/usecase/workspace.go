package usecase

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/video-generator-service/internal/entity"
)

// Workspace is the transient frame directory owned by one render.
type Workspace struct {
	dir string
}

// NewWorkspace creates root/frames-<renderID>. Distinct render IDs never share a directory.
func NewWorkspace(root, renderID string) (*Workspace, error) {
	if renderID == "" {
		return nil, fmt.Errorf("workspace: empty render ID")
	}
	dir := filepath.Join(root, "frames-"+renderID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("workspace: create %s: %w", dir, err)
	}
	return &Workspace{dir: dir}, nil
}

func (w *Workspace) Dir() string { return w.dir }

// FrameFiles lists the frame files currently in the workspace, in name order.
func (w *Workspace) FrameFiles() ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), entity.FramePrefix) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// PurgeFrames deletes every frame file and returns how many were removed.
func (w *Workspace) PurgeFrames() (int, error) {
	names, err := w.FrameFiles()
	if err != nil {
		return 0, err
	}
	for i, name := range names {
		if err := os.Remove(filepath.Join(w.dir, name)); err != nil && !os.IsNotExist(err) {
			return i, err
		}
	}
	return len(names), nil
}

// Remove deletes the workspace directory and everything left in it.
func (w *Workspace) Remove() error {
	return os.RemoveAll(w.dir)
}
