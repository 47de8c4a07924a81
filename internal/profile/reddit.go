package profile

import "github.com/nigelgutzmann/video-converter/pkg/converter"

type reddit struct{}

func init() {
	Register(&reddit{})
}

func (p *reddit) Name() string {
	return "reddit"
}

func (p *reddit) Description() string {
	return "landscape mp4, h264/aac, 1920x1080 shrink-to-fit"
}

func (p *reddit) Request() *converter.Request {
	return &converter.Request{
		Format: "mp4",
		Audio: map[string]interface{}{
			"codec":      "aac",
			"bitrate":    192,
			"samplerate": 48000,
		},
		Video: map[string]interface{}{
			"codec":         "h264",
			"bitrate":       4000,
			"max_width":     1920,
			"max_height":    1080,
			"sizing_policy": "ShrinkToFit",
			"autorotate":    true,
		},
	}
}
