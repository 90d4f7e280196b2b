package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/video-generator-service/internal/entity"
	"github.com/user/video-generator-service/internal/repository"
)

const schema = `
	CREATE TABLE IF NOT EXISTS video_artifacts (
		render_id        TEXT PRIMARY KEY,
		business_name    TEXT NOT NULL,
		file_name        TEXT NOT NULL UNIQUE,
		path             TEXT NOT NULL,
		video_url        TEXT NOT NULL,
		size_bytes       BIGINT NOT NULL,
		duration_seconds INTEGER NOT NULL,
		settings         JSONB NOT NULL,
		document_title   TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS video_artifacts_created_at_idx ON video_artifacts (created_at DESC);
`

const selectColumns = `
	SELECT render_id, business_name, file_name, path, video_url, size_bytes, duration_seconds, settings, document_title, created_at
	FROM video_artifacts
`

var _ repository.ArtifactRepository = (*ArtifactRepoImpl)(nil)

// ArtifactRepoImpl provides a concrete implementation for the ArtifactRepository interface using PostgreSQL.
type ArtifactRepoImpl struct {
	db *pgxpool.Pool
}

// NewArtifactRepo creates a new instance of ArtifactRepoImpl.
func NewArtifactRepo(db *pgxpool.Pool) *ArtifactRepoImpl {
	return &ArtifactRepoImpl{db: db}
}

// EnsureSchema creates the catalog table if it does not exist yet.
func (r *ArtifactRepoImpl) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, schema)
	return err
}

// Save stores or updates an artifact record, keyed by render ID.
func (r *ArtifactRepoImpl) Save(ctx context.Context, a *entity.VideoArtifact) error {
	settingsJSON, err := json.Marshal(a.Settings)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO video_artifacts (render_id, business_name, file_name, path, video_url, size_bytes, duration_seconds, settings, document_title, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (render_id) DO UPDATE SET
			file_name = EXCLUDED.file_name,
			path = EXCLUDED.path,
			video_url = EXCLUDED.video_url,
			size_bytes = EXCLUDED.size_bytes,
			settings = EXCLUDED.settings,
			document_title = EXCLUDED.document_title;
	`
	_, err = r.db.Exec(ctx, query,
		a.RenderID,
		a.BusinessLabel,
		a.FileName,
		a.Path,
		a.VideoURL,
		a.SizeBytes,
		a.DurationSeconds,
		settingsJSON,
		a.DocumentTitle,
		a.CreatedAt,
	)
	return err
}

// List returns up to limit artifacts, newest first.
func (r *ArtifactRepoImpl) List(ctx context.Context, limit int) ([]*entity.VideoArtifact, error) {
	rows, err := r.db.Query(ctx, selectColumns+` ORDER BY created_at DESC LIMIT $1;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	artifacts := []*entity.VideoArtifact{}
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}

// FindByFileName retrieves the artifact stored under fileName.
func (r *ArtifactRepoImpl) FindByFileName(ctx context.Context, fileName string) (*entity.VideoArtifact, error) {
	row := r.db.QueryRow(ctx, selectColumns+` WHERE file_name = $1;`, fileName)
	a, err := scanArtifact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrArtifactNotFound
	}
	return a, err
}

func scanArtifact(row pgx.Row) (*entity.VideoArtifact, error) {
	var a entity.VideoArtifact
	var settingsJSON []byte
	if err := row.Scan(
		&a.RenderID,
		&a.BusinessLabel,
		&a.FileName,
		&a.Path,
		&a.VideoURL,
		&a.SizeBytes,
		&a.DurationSeconds,
		&settingsJSON,
		&a.DocumentTitle,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(settingsJSON, &a.Settings); err != nil {
		return nil, err
	}
	return &a, nil
}
