package profile

import "github.com/nigelgutzmann/video-converter/pkg/converter"

type webVP8 struct{}

func init() {
	Register(&webVP8{})
}

func (p *webVP8) Name() string {
	return "web-vp8"
}

func (p *webVP8) Description() string {
	return "webm, vp8/vorbis, 1280x720 shrink-to-fit"
}

func (p *webVP8) Request() *converter.Request {
	return &converter.Request{
		Format: "webm",
		Audio: map[string]interface{}{
			"codec":   "vorbis",
			"quality": 4,
		},
		Video: map[string]interface{}{
			"codec":         "vp8",
			"bitrate":       1500,
			"max_width":     1280,
			"max_height":    720,
			"sizing_policy": "ShrinkToFit",
			"autorotate":    true,
		},
	}
}
