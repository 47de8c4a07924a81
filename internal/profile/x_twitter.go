package profile

import "github.com/nigelgutzmann/video-converter/pkg/converter"

type xTwitter struct{}

func init() {
	Register(&xTwitter{})
}

func (p *xTwitter) Name() string {
	return "x-twitter"
}

func (p *xTwitter) Description() string {
	return "landscape mp4, h264/aac, 1920x1200 shrink-to-fit"
}

func (p *xTwitter) Request() *converter.Request {
	return &converter.Request{
		Format: "mp4",
		Audio: map[string]interface{}{
			"codec":   "aac",
			"bitrate": 128,
		},
		Video: map[string]interface{}{
			"codec":         "h264",
			"bitrate":       2000,
			"max_width":     1920,
			"max_height":    1200,
			"sizing_policy": "ShrinkToFit",
			"autorotate":    true,
		},
	}
}
