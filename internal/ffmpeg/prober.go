// Package ffmpeg provides the engine collaborators: a prober over
// ffprobe's JSON output and a runner that drives ffmpeg as a subprocess
// while parsing its textual progress.
package ffmpeg

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/nigelgutzmann/video-converter/pkg/converter"
)

// Prober introspects media files with ffprobe.
type Prober struct {
	log hclog.Logger
}

// NewProber creates a Prober. A nil logger disables logging.
func NewProber(logger hclog.Logger) *Prober {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Prober{log: logger}
}

// Probe examines the media source and reports the container duration and
// the first audio and video streams found.
func (p *Prober) Probe(inputPath string) (*converter.MediaInfo, error) {
	probe, err := ffmpeg.Probe(inputPath)
	if err != nil {
		return nil, errors.Wrap(err, "error probing media")
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(probe), &data); err != nil {
		return nil, errors.WithStack(err)
	}

	streams, ok := data["streams"].([]interface{})
	if !ok || len(streams) == 0 {
		return nil, errors.New("no streams found in media")
	}

	info := &converter.MediaInfo{}
	for _, stream := range streams {
		s, ok := stream.(map[string]interface{})
		if !ok {
			continue
		}
		switch s["codec_type"] {
		case "video":
			if info.Video == nil {
				info.Video = parseVideoStream(s)
			}
		case "audio":
			if info.Audio == nil {
				info.Audio = parseAudioStream(s)
			}
		}
	}

	info.Format.Duration = parseDuration(data)
	p.log.Debug("probed media", "path", inputPath,
		"duration", info.Format.Duration,
		"video", info.Video != nil, "audio", info.Audio != nil)
	return info, nil
}

func parseVideoStream(s map[string]interface{}) *converter.VideoStream {
	v := &converter.VideoStream{}
	if codec, ok := s["codec_name"].(string); ok {
		v.Codec = codec
	}
	if w, ok := s["width"].(float64); ok {
		v.Width = int(w)
	}
	if h, ok := s["height"].(float64); ok {
		v.Height = int(h)
	}
	if tags, ok := s["tags"].(map[string]interface{}); ok {
		if rotate, ok := tags["rotate"].(string); ok {
			if deg, err := strconv.Atoi(strings.TrimSpace(rotate)); err == nil {
				v.Rotate = deg
			}
		}
	}
	return v
}

func parseAudioStream(s map[string]interface{}) *converter.AudioStream {
	a := &converter.AudioStream{}
	if codec, ok := s["codec_name"].(string); ok {
		a.Codec = codec
	}
	if ch, ok := s["channels"].(float64); ok {
		a.Channels = int(ch)
	}
	if sr, ok := s["sample_rate"].(string); ok {
		if n, err := strconv.Atoi(sr); err == nil {
			a.SampleRate = n
		}
	}
	return a
}

// parseDuration prefers the container duration and falls back to the
// first stream that reports one.
func parseDuration(data map[string]interface{}) float64 {
	if format, ok := data["format"].(map[string]interface{}); ok {
		if d := floatField(format, "duration"); d > 0 {
			return d
		}
	}
	if streams, ok := data["streams"].([]interface{}); ok {
		for _, stream := range streams {
			if s, ok := stream.(map[string]interface{}); ok {
				if d := floatField(s, "duration"); d > 0 {
					return d
				}
			}
		}
	}
	return 0
}

func floatField(m map[string]interface{}, key string) float64 {
	if s, ok := m[key].(string); ok {
		if d, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return d
		}
	}
	return 0
}
