package usecase

import (
	"time"

	"github.com/user/video-generator-service/internal/entity"
	"github.com/user/video-generator-service/pkg/utils"
)

const videoURLPrefix = "/videos/"

// VideoURL is the public download path of a produced video.
func VideoURL(fileName string) string {
	return videoURLPrefix + fileName
}

// BuildArtifact assembles the result record for an encoded video. It performs no I/O.
func BuildArtifact(renderID, label, path, fileName string, sizeBytes int64, settings entity.EncodingSettings, createdAt time.Time) *entity.VideoArtifact {
	return &entity.VideoArtifact{
		RenderID:        renderID,
		BusinessLabel:   label,
		Path:            path,
		FileName:        fileName,
		VideoURL:        VideoURL(fileName),
		SizeBytes:       sizeBytes,
		SizeReadable:    utils.ReadableSize(sizeBytes),
		DurationSeconds: settings.DurationSeconds,
		Settings:        settings,
		CreatedAt:       createdAt,
	}
}
