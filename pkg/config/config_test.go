package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3030", cfg.ServerPort)
	assert.Equal(t, 60, cfg.VideoFPS)
	assert.Equal(t, 16, cfg.VideoDurationSeconds)
	assert.Equal(t, 1, cfg.HeroHoldSeconds)
	assert.Equal(t, 18, cfg.VideoCRF)
	assert.Equal(t, "fast", cfg.VideoPreset)
	assert.Equal(t, "roofing", cfg.FilePrefix)
	assert.Equal(t, 3*time.Second, cfg.SettleDelay())
	assert.Equal(t, 10*time.Second, cfg.EmbedTimeout())
	assert.Equal(t, 2*time.Second, cfg.EmbedDelay())
	assert.Equal(t, time.Second, cfg.MutationDelay())
	assert.Equal(t, 24*time.Hour, cfg.StatusTTL())
	assert.False(t, cfg.KeepFramesOnFailure)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("VIDEO_FPS", "30")
	t.Setenv("VIDEO_DURATION_SECONDS", "10")
	t.Setenv("FILE_PREFIX", "hvac")
	t.Setenv("KEEP_FRAMES_ON_FAILURE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.VideoFPS)
	assert.Equal(t, 10, cfg.VideoDurationSeconds)
	assert.Equal(t, "hvac", cfg.FilePrefix)
	assert.True(t, cfg.KeepFramesOnFailure)
}

func TestLoadRejectsInvalidTiming(t *testing.T) {
	t.Setenv("HERO_HOLD_SECONDS", "20")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HERO_HOLD_SECONDS")
}

func TestValidateFrameLimit(t *testing.T) {
	cfg := &Config{
		VideoFPS:             120,
		VideoDurationSeconds: 100,
		VideoCRF:             18,
		MaxConcurrentRenders: 1,
		OutputDir:            "videos",
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "9999")

	cfg.VideoDurationSeconds = 16
	assert.NoError(t, cfg.Validate())
}
