package converter

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Request is the declarative description of one conversion. The
// per-stream sections are untrusted option sets; each descriptor
// sanitizes its own slice.
type Request struct {
	Format   string                 `yaml:"format"`
	Audio    map[string]interface{} `yaml:"audio,omitempty"`
	Video    map[string]interface{} `yaml:"video,omitempty"`
	Subtitle map[string]interface{} `yaml:"subtitle,omitempty"`
	Map      *int                   `yaml:"map,omitempty"`
	Start    string                 `yaml:"start,omitempty"`
	Duration string                 `yaml:"duration,omitempty"`
}

// clone copies the request one level deep so probe-derived values can be
// injected without mutating the caller's maps.
func (r *Request) clone() *Request {
	out := *r
	out.Audio = cloneOptions(r.Audio)
	out.Video = cloneOptions(r.Video)
	out.Subtitle = cloneOptions(r.Subtitle)
	return &out
}

func cloneOptions(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MediaInfo describes the streams discovered in a source file.
type MediaInfo struct {
	Format FormatInfo
	Audio  *AudioStream
	Video  *VideoStream
}

// FormatInfo holds container-level metadata.
type FormatInfo struct {
	Duration float64 // seconds
}

// VideoStream describes the first video stream of a source.
type VideoStream struct {
	Codec  string
	Width  int
	Height int
	Rotate int // rotation tag in degrees, 0 when absent
}

// AudioStream describes the first audio stream of a source.
type AudioStream struct {
	Codec      string
	Channels   int
	SampleRate int
}

// Prober introspects a media source. Implementations live outside the
// core; internal/ffmpeg provides the ffprobe-backed one.
type Prober interface {
	Probe(path string) (*MediaInfo, error)
}

// Update is one engine progress event: either a parsed timecode, a raw
// diagnostic line, or a terminal error.
type Update struct {
	Timecode float64 // seconds of media processed, 0 when not a progress line
	Line     string
	Err      error
}

// RunOptions tunes a single engine invocation. Timeout bounds the wait
// for each update, not the total run.
type RunOptions struct {
	Timeout time.Duration
	Nice    int
}

// Engine runs the external transcoding engine with a prepared argument
// list and yields progress events until the process exits.
type Engine interface {
	Run(ctx context.Context, infile, outfile string, args []string, opts RunOptions) (<-chan Update, error)
}

var urlRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// IsURL reports whether source looks like a remote locator rather than a
// local path.
func IsURL(source string) bool {
	return urlRe.MatchString(source)
}

var clockRe = regexp.MustCompile(`^\d+:[0-5]?\d:[0-5]?\d(\.\d+)?$`)

// parseTime validates a time expression in the engine's accepted forms:
// raw seconds or HH:MM:SS with an optional fraction.
func parseTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
		return s, nil
	}
	if clockRe.MatchString(s) {
		return s, nil
	}
	return "", errors.Errorf("invalid time value: %q", s)
}
