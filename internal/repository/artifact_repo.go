package repository

import (
	"context"

	"github.com/user/video-generator-service/internal/entity"
)

// ArtifactRepository defines the catalog of produced videos.
type ArtifactRepository interface {
	// Save records a produced artifact.
	Save(ctx context.Context, artifact *entity.VideoArtifact) error
	// List returns the most recent artifacts first.
	List(ctx context.Context, limit int) ([]*entity.VideoArtifact, error)
	// FindByFileName retrieves one artifact, or ErrArtifactNotFound.
	FindByFileName(ctx context.Context, fileName string) (*entity.VideoArtifact, error)
}
