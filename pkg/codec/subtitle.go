package codec

import (
	"github.com/nigelgutzmann/video-converter/pkg/avopt"
)

var subtitleSchema = avopt.Schema{
	"codec":    avopt.String,
	"language": avopt.String,
	"forced":   avopt.Int,
	"default":  avopt.Int,
}

// subtitleCodec handles the general subtitle options. Language, forced
// and default are validated so downstream consumers can rely on the safe
// set, but the emitted fragment carries only the codec selection.
type subtitleCodec struct {
	name       string
	engineName string
}

func (c *subtitleCodec) Name() string       { return c.name }
func (c *subtitleCodec) EngineName() string { return c.engineName }

func (c *subtitleCodec) Parse(raw map[string]interface{}) ([]string, error) {
	if err := checkName(raw, c.name); err != nil {
		return nil, err
	}

	safe, _ := avopt.Sanitize(subtitleSchema, raw)

	safe.DropOutsideRange("forced", 0, 1)
	safe.DropOutsideRange("default", 0, 1)
	if lang, ok := safe.String("language"); ok && len(lang) > 3 {
		delete(safe, "language")
	}

	return []string{"-scodec", c.engineName}, nil
}

type nullSubtitle struct{}

func (nullSubtitle) Name() string       { return "" }
func (nullSubtitle) EngineName() string { return "" }
func (nullSubtitle) Parse(map[string]interface{}) ([]string, error) {
	return []string{"-sn"}, nil
}

type copySubtitle struct{}

func (copySubtitle) Name() string       { return "copy" }
func (copySubtitle) EngineName() string { return "copy" }
func (copySubtitle) Parse(map[string]interface{}) ([]string, error) {
	return []string{"-scodec", "copy"}, nil
}

func subtitleCodecs() []Codec {
	return []Codec{
		&subtitleCodec{name: "mov_text", engineName: "mov_text"},
		&subtitleCodec{name: "ass", engineName: "ass"},
		&subtitleCodec{name: "subrip", engineName: "subrip"},
		&subtitleCodec{name: "dvdsub", engineName: "dvdsub"},
		&subtitleCodec{name: "dvbsub", engineName: "dvbsub"},
	}
}
