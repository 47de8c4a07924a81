package profile

import "github.com/nigelgutzmann/video-converter/pkg/converter"

type instagramReel struct{}

func init() {
	Register(&instagramReel{})
}

func (p *instagramReel) Name() string {
	return "instagram-reel"
}

func (p *instagramReel) Description() string {
	return "portrait mp4, h264/aac, 1080x1920 fill"
}

func (p *instagramReel) Request() *converter.Request {
	return &converter.Request{
		Format: "mp4",
		Audio: map[string]interface{}{
			"codec":   "aac",
			"bitrate": 128,
		},
		Video: map[string]interface{}{
			"codec":         "h264",
			"bitrate":       2000,
			"max_width":     1080,
			"max_height":    1920,
			"sizing_policy": "Fill",
			"autorotate":    true,
			"preset":        "slower",
			"profile":       "high",
		},
	}
}
