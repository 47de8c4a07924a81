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

	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, 10*time.Second, cfg.ProgressTimeout)
	assert.Equal(t, 0, cfg.Nice)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("VIDEOCONV_FFMPEG_PATH", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("VIDEOCONV_PROGRESS_TIMEOUT", "30s")
	t.Setenv("VIDEOCONV_NICE", "10")
	t.Setenv("VIDEOCONV_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, 30*time.Second, cfg.ProgressTimeout)
	assert.Equal(t, 10, cfg.Nice)
	assert.Equal(t, "debug", cfg.LogLevel)
}
