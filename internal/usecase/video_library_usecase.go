package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/video-generator-service/internal/entity"
	"github.com/user/video-generator-service/internal/repository"
	"github.com/user/video-generator-service/pkg/utils"
)

const videoExt = ".mp4"

var (
	ErrVideoNotFound = errors.New("video not found")
)

// VideoLibrary answers read-side queries about produced videos and renders.
type VideoLibrary interface {
	List(ctx context.Context, limit int) ([]*entity.VideoArtifact, error)
	RenderStatus(ctx context.Context, renderID string) (*entity.RenderStatus, error)
	// Video describes one produced video, preferring the catalog record.
	Video(ctx context.Context, fileName string) (*entity.VideoArtifact, error)
	// ResolveVideo maps a public file name to its path inside the output directory.
	ResolveVideo(fileName string) (string, error)
}

type videoLibraryUseCase struct {
	outputDir    string
	artifactRepo repository.ArtifactRepository
	statusRepo   repository.RenderStatusRepository
}

// NewVideoLibrary creates the library use case. Without a catalog, listings
// are built from the output directory.
func NewVideoLibrary(outputDir string, artifactRepo repository.ArtifactRepository, statusRepo repository.RenderStatusRepository) VideoLibrary {
	return &videoLibraryUseCase{
		outputDir:    outputDir,
		artifactRepo: artifactRepo,
		statusRepo:   statusRepo,
	}
}

func (uc *videoLibraryUseCase) List(ctx context.Context, limit int) ([]*entity.VideoArtifact, error) {
	if uc.artifactRepo != nil {
		return uc.artifactRepo.List(ctx, limit)
	}
	return uc.scanOutputDir(limit)
}

func (uc *videoLibraryUseCase) RenderStatus(ctx context.Context, renderID string) (*entity.RenderStatus, error) {
	if uc.statusRepo == nil {
		return nil, repository.ErrStatusNotFound
	}
	return uc.statusRepo.Get(ctx, renderID)
}

// Video returns the catalog record for fileName, or one built from the file
// on disk when the catalog has no row.
func (uc *videoLibraryUseCase) Video(ctx context.Context, fileName string) (*entity.VideoArtifact, error) {
	path, err := uc.ResolveVideo(fileName)
	if err != nil {
		return nil, err
	}
	if uc.artifactRepo != nil {
		artifact, err := uc.artifactRepo.FindByFileName(ctx, fileName)
		if err == nil {
			return artifact, nil
		}
		if !errors.Is(err, repository.ErrArtifactNotFound) {
			return nil, err
		}
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, ErrVideoNotFound
	}
	return fileArtifact(path, info), nil
}

func (uc *videoLibraryUseCase) ResolveVideo(fileName string) (string, error) {
	if !isVideoFileName(fileName) {
		return "", ErrVideoNotFound
	}
	path := filepath.Join(uc.outputDir, fileName)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", ErrVideoNotFound
	}
	return path, nil
}

func (uc *videoLibraryUseCase) scanOutputDir(limit int) ([]*entity.VideoArtifact, error) {
	entries, err := os.ReadDir(uc.outputDir)
	if os.IsNotExist(err) {
		return []*entity.VideoArtifact{}, nil
	}
	if err != nil {
		return nil, err
	}

	videos := []*entity.VideoArtifact{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), videoExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		videos = append(videos, fileArtifact(filepath.Join(uc.outputDir, e.Name()), info))
	}
	sort.Slice(videos, func(i, j int) bool { return videos[i].CreatedAt.After(videos[j].CreatedAt) })
	if limit > 0 && len(videos) > limit {
		videos = videos[:limit]
	}
	return videos, nil
}

// isVideoFileName accepts bare *.mp4 base names only.
func isVideoFileName(name string) bool {
	return name != "" && name == filepath.Base(name) && !strings.HasPrefix(name, ".") && strings.HasSuffix(name, videoExt)
}

func fileArtifact(path string, info os.FileInfo) *entity.VideoArtifact {
	return &entity.VideoArtifact{
		Path:         path,
		FileName:     info.Name(),
		VideoURL:     VideoURL(info.Name()),
		SizeBytes:    info.Size(),
		SizeReadable: utils.ReadableSize(info.Size()),
		CreatedAt:    info.ModTime(),
	}
}
