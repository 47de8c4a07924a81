package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAudio(t *testing.T, name string, raw map[string]interface{}) []string {
	t.Helper()
	c, err := DefaultAudio().Get(name)
	require.NoError(t, err)
	args, err := c.Parse(raw)
	require.NoError(t, err)
	return args
}

func TestAudioCodecParse(t *testing.T) {
	args := parseAudio(t, "aac", map[string]interface{}{
		"codec":      "aac",
		"channels":   2,
		"bitrate":    128,
		"samplerate": 44100,
	})

	assert.Equal(t, []string{
		"-acodec", "aac",
		"-ac", "2",
		"-ab", "128k",
		"-ar", "44100",
		"-strict", "experimental",
	}, args)
}

func TestAudioBitrateBoundary(t *testing.T) {
	t.Run("below floor is dropped", func(t *testing.T) {
		args := parseAudio(t, "mp3", map[string]interface{}{"codec": "mp3", "bitrate": 7})
		assert.NotContains(t, args, "-ab")
	})

	t.Run("floor is retained exactly", func(t *testing.T) {
		args := parseAudio(t, "mp3", map[string]interface{}{"codec": "mp3", "bitrate": 8})
		assert.Contains(t, args, "-ab")
		assert.Contains(t, args, "8k")
	})

	t.Run("above ceiling is dropped", func(t *testing.T) {
		args := parseAudio(t, "mp3", map[string]interface{}{"codec": "mp3", "bitrate": 513})
		assert.NotContains(t, args, "-ab")
	})
}

func TestAudioRangeValidation(t *testing.T) {
	args := parseAudio(t, "ac3", map[string]interface{}{
		"codec":      "ac3",
		"channels":   13,    // above 12
		"samplerate": 96000, // above 50000
	})
	assert.Equal(t, []string{"-acodec", "ac3"}, args)
}

func TestAudioEngineNames(t *testing.T) {
	tests := []struct {
		name   string
		engine string
	}{
		{"mp3", "libmp3lame"},
		{"vorbis", "libvorbis"},
		{"aac", "aac"},
		{"mp2", "mp2"},
		{"flac", "flac"},
	}
	for _, tt := range tests {
		c, err := DefaultAudio().Get(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.engine, c.EngineName())
	}
}

func TestVorbisQuality(t *testing.T) {
	args := parseAudio(t, "vorbis", map[string]interface{}{"codec": "vorbis", "quality": 5})
	assert.Equal(t, []string{"-acodec", "libvorbis", "-qscale:a", "5"}, args)
}

func TestNullAudio(t *testing.T) {
	c, err := DefaultAudio().Get("")
	require.NoError(t, err)
	args, err := c.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"-an"}, args)
}

func TestCopyAudioIgnoresOptions(t *testing.T) {
	args := parseAudio(t, "copy", map[string]interface{}{
		"codec":   "copy",
		"bitrate": 128,
	})
	assert.Equal(t, []string{"-acodec", "copy"}, args)
}

func TestAudioCodecNameMismatch(t *testing.T) {
	c, err := DefaultAudio().Get("aac")
	require.NoError(t, err)

	_, err = c.Parse(map[string]interface{}{"codec": "mp3"})
	assert.Error(t, err)

	_, err = c.Parse(map[string]interface{}{})
	assert.Error(t, err)
}

func TestAudioRegistryUnknown(t *testing.T) {
	_, err := DefaultAudio().Get("opus")
	assert.Error(t, err)
}
