package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseVideo(t *testing.T, name string, raw map[string]interface{}) []string {
	t.Helper()
	c, err := DefaultVideo().Get(name)
	require.NoError(t, err)
	args, err := c.Parse(raw)
	require.NoError(t, err)
	return args
}

func vfValue(args []string) string {
	for i, a := range args {
		if a == "-vf" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func TestVideoCodecMinimal(t *testing.T) {
	args := parseVideo(t, "h264", map[string]interface{}{"codec": "h264"})
	assert.Equal(t, []string{"-pix_fmt", "yuv420p", "-vcodec", "libx264"}, args)
}

func TestVideoGeneralOptions(t *testing.T) {
	args := parseVideo(t, "h264", map[string]interface{}{
		"codec":   "h264",
		"fps":     30,
		"bitrate": 2000,
	})
	assert.Equal(t, []string{
		"-pix_fmt", "yuv420p",
		"-vcodec", "libx264",
		"-r", "30",
		"-vb", "2000k",
	}, args)
}

func TestVideoRangeValidation(t *testing.T) {
	args := parseVideo(t, "h264", map[string]interface{}{
		"codec":   "h264",
		"fps":     121,   // above 120
		"bitrate": 15001, // above 15000
	})
	assert.NotContains(t, args, "-r")
	assert.NotContains(t, args, "-vb")
}

func TestVideoGeometryFit(t *testing.T) {
	args := parseVideo(t, "h264", map[string]interface{}{
		"codec":         "h264",
		"src_width":     1920,
		"src_height":    1080,
		"max_width":     1280,
		"max_height":    720,
		"sizing_policy": "Fit",
	})
	assert.Contains(t, args, "-s")
	assert.Contains(t, args, "1280x720")
	assert.Contains(t, args, "-aspect")
	assert.Contains(t, args, "1280:720")
	assert.NotContains(t, args, "-vf")
}

func TestVideoGeometryFillCrops(t *testing.T) {
	args := parseVideo(t, "h264", map[string]interface{}{
		"codec":         "h264",
		"src_width":     1600,
		"src_height":    900,
		"max_width":     800,
		"max_height":    800,
		"sizing_policy": "Fill",
	})
	assert.Contains(t, args, "1422x800")
	assert.Equal(t, "crop=800:800:311:0", vfValue(args))
}

func TestVideoOddDimensionsBumpedEven(t *testing.T) {
	args := parseVideo(t, "h264", map[string]interface{}{
		"codec":         "h264",
		"src_width":     1920,
		"src_height":    1080,
		"max_width":     799,
		"max_height":    599,
		"sizing_policy": "Stretch",
	})
	assert.Contains(t, args, "800x600")
}

func TestVideoAutorotateSwapsDimensions(t *testing.T) {
	base := map[string]interface{}{
		"codec":         "h264",
		"src_width":     1920,
		"src_height":    1080,
		"max_width":     1280,
		"max_height":    720,
		"sizing_policy": "Fit",
	}

	plain := parseVideo(t, "h264", base)
	assert.Contains(t, plain, "1280x720")

	rotated := map[string]interface{}{"autorotate": true, "src_rotate": 90}
	for k, v := range base {
		rotated[k] = v
	}
	args := parseVideo(t, "h264", rotated)
	assert.Contains(t, args, "720x1280")
	assert.Contains(t, args, "720:1280")
	assert.Equal(t, "transpose=1", vfValue(args))
}

func TestVideoAutorotate180KeepsDimensions(t *testing.T) {
	args := parseVideo(t, "h264", map[string]interface{}{
		"codec":         "h264",
		"src_width":     1920,
		"src_height":    1080,
		"max_width":     1280,
		"max_height":    720,
		"sizing_policy": "Fit",
		"autorotate":    true,
		"src_rotate":    180,
	})
	assert.Contains(t, args, "1280x720")
	assert.Equal(t, "transpose=2,transpose=2", vfValue(args))
}

func TestVideoFilterChainOrder(t *testing.T) {
	args := parseVideo(t, "h264", map[string]interface{}{
		"codec":         "h264",
		"src_width":     1600,
		"src_height":    900,
		"max_width":     800,
		"max_height":    800,
		"sizing_policy": "Fill",
		"autorotate":    true,
		"src_rotate":    270,
		"filters":       "hflip",
	})
	// Crop, then rotation, then user filters; one -vf only.
	assert.Equal(t, "crop=800:800:311:0,transpose=2,hflip", vfValue(args))
	count := 0
	for _, a := range args {
		if a == "-vf" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestH264SpecificOptions(t *testing.T) {
	args := parseVideo(t, "h264", map[string]interface{}{
		"codec":                        "h264",
		"preset":                       "slow",
		"quality":                      23,
		"profile":                      "high",
		"tune":                         "film",
		"level":                        "4.1",
		"max_reference_frames":         4,
		"max_rate":                     "2M",
		"max_frames_between_keyframes": 60,
	})
	assert.Equal(t, []string{
		"-pix_fmt", "yuv420p",
		"-vcodec", "libx264",
		"-preset", "slow",
		"-crf", "23",
		"-profile", "high",
		"-tune", "film",
		"-level", "4.1",
		"-refs", "4",
		"-maxrate", "2M",
		"-g", "60",
	}, args)
}

func TestTheoraQuality(t *testing.T) {
	args := parseVideo(t, "theora", map[string]interface{}{"codec": "theora", "quality": 7})
	assert.Equal(t, []string{
		"-pix_fmt", "yuv420p",
		"-vcodec", "libtheora",
		"-qscale:v", "7",
	}, args)
}

func TestMpegAspectInjectedBeforeCrop(t *testing.T) {
	args := parseVideo(t, "mpeg2", map[string]interface{}{
		"codec":         "mpeg2",
		"src_width":     1600,
		"src_height":    900,
		"max_width":     800,
		"max_height":    800,
		"sizing_policy": "Fill",
	})
	assert.Contains(t, args, "-vcodec")
	assert.Contains(t, args, "mpeg2video")
	assert.Equal(t, "aspect=1422:800,crop=800:800:311:0", vfValue(args))
}

func TestNullVideo(t *testing.T) {
	c, err := DefaultVideo().Get("")
	require.NoError(t, err)
	args, err := c.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"-vn"}, args)
}

func TestCopyVideoIgnoresOptions(t *testing.T) {
	args := parseVideo(t, "copy", map[string]interface{}{
		"codec":     "copy",
		"max_width": 640,
	})
	assert.Equal(t, []string{"-vcodec", "copy"}, args)
}

func TestVideoEngineNames(t *testing.T) {
	tests := []struct {
		name   string
		engine string
	}{
		{"h264", "libx264"},
		{"theora", "libtheora"},
		{"divx", "mpeg4"},
		{"vp8", "libvpx"},
		{"mpeg1", "mpeg1video"},
		{"mpeg2", "mpeg2video"},
	}
	for _, tt := range tests {
		c, err := DefaultVideo().Get(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.engine, c.EngineName())
	}
}
