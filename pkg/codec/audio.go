package codec

import (
	"strconv"

	"github.com/nigelgutzmann/video-converter/pkg/avopt"
)

// audioSchema is the option schema shared by every audio codec.
var audioSchema = avopt.Schema{
	"codec":      avopt.String,
	"channels":   avopt.Int,
	"bitrate":    avopt.Int,
	"samplerate": avopt.Int,
}

// audioCodec handles the general audio options (channels, bitrate,
// samplerate); concrete codecs add extra schema entries and trailing
// codec-specific tokens through the specific hook.
type audioCodec struct {
	name       string
	engineName string
	extra      avopt.Schema
	specific   func(safe avopt.Options) []string
}

func (c *audioCodec) Name() string       { return c.name }
func (c *audioCodec) EngineName() string { return c.engineName }

func (c *audioCodec) Parse(raw map[string]interface{}) ([]string, error) {
	if err := checkName(raw, c.name); err != nil {
		return nil, err
	}

	schema := audioSchema
	if c.extra != nil {
		schema = schema.Extend(c.extra)
	}
	safe, _ := avopt.Sanitize(schema, raw)

	safe.DropOutsideRange("channels", 1, 12)
	safe.DropOutsideRange("bitrate", 8, 512)
	safe.DropOutsideRange("samplerate", 1000, 50000)

	args := []string{"-acodec", c.engineName}
	if ch, ok := safe.Int("channels"); ok {
		args = append(args, "-ac", strconv.Itoa(ch))
	}
	if br, ok := safe.Int("bitrate"); ok {
		args = appendKbps(args, "-ab", br)
	}
	if sr, ok := safe.Int("samplerate"); ok {
		args = append(args, "-ar", strconv.Itoa(sr))
	}

	if c.specific != nil {
		args = append(args, c.specific(safe)...)
	}
	return args, nil
}

// nullAudio disables the audio stream entirely.
type nullAudio struct{}

func (nullAudio) Name() string       { return "" }
func (nullAudio) EngineName() string { return "" }
func (nullAudio) Parse(map[string]interface{}) ([]string, error) {
	return []string{"-an"}, nil
}

// copyAudio copies the audio stream from the source, ignoring all other
// options.
type copyAudio struct{}

func (copyAudio) Name() string       { return "copy" }
func (copyAudio) EngineName() string { return "copy" }
func (copyAudio) Parse(map[string]interface{}) ([]string, error) {
	return []string{"-acodec", "copy"}, nil
}

// qualitySchema is shared by the quality-factor codecs.
var qualitySchema = avopt.Schema{"quality": avopt.Int}

func audioCodecs() []Codec {
	return []Codec{
		&audioCodec{
			name:       "vorbis",
			engineName: "libvorbis",
			extra:      qualitySchema,
			specific: func(safe avopt.Options) []string {
				// Quality range is 0-10; 3-6 is the useful band.
				if q, ok := safe.Int("quality"); ok {
					return []string{"-qscale:a", strconv.Itoa(q)}
				}
				return nil
			},
		},
		&audioCodec{
			name:       "aac",
			engineName: "aac",
			specific: func(avopt.Options) []string {
				// The native encoder still sits behind the experimental
				// strictness gate on older ffmpeg builds.
				return []string{"-strict", "experimental"}
			},
		},
		&audioCodec{name: "libfdk_aac", engineName: "libfdk_aac"},
		&audioCodec{name: "ac3", engineName: "ac3"},
		&audioCodec{name: "flac", engineName: "flac"},
		&audioCodec{name: "dts", engineName: "dts"},
		&audioCodec{name: "mp3", engineName: "libmp3lame"},
		&audioCodec{name: "mp2", engineName: "mp2"},
	}
}
