package codec

import (
	"fmt"
	"strconv"

	"github.com/nigelgutzmann/video-converter/pkg/avopt"
)

var videoSchema = avopt.Schema{
	"codec":         avopt.String,
	"bitrate":       avopt.Int,
	"fps":           avopt.Int,
	"max_width":     avopt.Int,
	"max_height":    avopt.Int,
	"sizing_policy": avopt.String,
	"src_width":     avopt.Int,
	"src_height":    avopt.Int,
	"src_rotate":    avopt.Int,
	"filters":       avopt.String,
	"autorotate":    avopt.Bool,
}

// videoCodec handles the general video options and the geometry
// resolution pipeline. Concrete codecs add schema entries and trailing
// tokens via specific; adjust lets a family rewrite the filter chain
// before emission (the MPEG aspect workaround).
type videoCodec struct {
	name       string
	engineName string
	extra      avopt.Schema
	specific   func(safe avopt.Options) []string
	adjust     func(w, h int, filters string) string
}

func (c *videoCodec) Name() string       { return c.name }
func (c *videoCodec) EngineName() string { return c.engineName }

func (c *videoCodec) Parse(raw map[string]interface{}) ([]string, error) {
	if err := checkName(raw, c.name); err != nil {
		return nil, err
	}

	schema := videoSchema
	if c.extra != nil {
		schema = schema.Extend(c.extra)
	}
	safe, _ := avopt.Sanitize(schema, raw)

	safe.DropOutsideRange("fps", 1, 120)
	safe.DropOutsideRange("bitrate", 16, 15000)

	// Out-of-range max dimensions drop to "unconstrained"; odd survivors
	// are bumped to even.
	w := 0
	if v, ok := safe.Int("max_width"); ok && v >= 16 && v <= 4000 {
		w = evenUp(v)
	}
	h := 0
	if v, ok := safe.Int("max_height"); ok && v >= 16 && v <= 3000 {
		h = evenUp(v)
	}

	sw, _ := safe.Int("src_width")
	sh, _ := safe.Int("src_height")

	policy := PolicyKeep
	if s, ok := safe.String("sizing_policy"); ok {
		policy = parsePolicy(s)
	}

	w, h, filters := resolveGeometry(sw, sh, w, h, policy)
	w = evenUp(w)
	h = evenUp(h)

	autorotate, _ := safe.Bool("autorotate")
	rotate, hasRotate := safe.Int("src_rotate")
	if autorotate && hasRotate && (rotate == 90 || rotate == 270) {
		// Rotation changes the effective frame orientation.
		w, h = h, w
	}

	if c.adjust != nil {
		filters = c.adjust(w, h, filters)
	}

	// yuv420p is the most widely supported pixel format; ffmpeg falls
	// back to the encoder's best match if it cannot be selected.
	args := []string{"-pix_fmt", "yuv420p", "-vcodec", c.engineName}
	if fps, ok := safe.Int("fps"); ok {
		args = append(args, "-r", strconv.Itoa(fps))
	}
	if br, ok := safe.Int("bitrate"); ok {
		args = appendKbps(args, "-vb", br)
	}
	if w > 0 && h > 0 {
		args = append(args, "-s", fmt.Sprintf("%dx%d", w, h))
		args = append(args, "-aspect", fmt.Sprintf("%d:%d", w, h))
	}

	if filters != "" {
		args = extendVF(args, filters)
	}
	if autorotate && hasRotate {
		if f := rotateFilter(rotate); f != "" {
			args = extendVF(args, f)
		}
	}
	if user, ok := safe.String("filters"); ok {
		args = extendVF(args, user)
	}

	if c.specific != nil {
		args = append(args, c.specific(safe)...)
	}
	return args, nil
}

type nullVideo struct{}

func (nullVideo) Name() string       { return "" }
func (nullVideo) EngineName() string { return "" }
func (nullVideo) Parse(map[string]interface{}) ([]string, error) {
	return []string{"-vn"}, nil
}

type copyVideo struct{}

func (copyVideo) Name() string       { return "copy" }
func (copyVideo) EngineName() string { return "copy" }
func (copyVideo) Parse(map[string]interface{}) ([]string, error) {
	return []string{"-vcodec", "copy"}, nil
}

// mpegAspect counteracts an aspect-preservation defect in the MPEG
// encoder family by restating the aspect as a filter. It must precede
// any crop or pad filter so those operate on the corrected dimensions.
func mpegAspect(w, h int, filters string) string {
	if w <= 0 || h <= 0 {
		return filters
	}
	aspect := fmt.Sprintf("aspect=%d:%d", w, h)
	if filters == "" {
		return aspect
	}
	return aspect + "," + filters
}

var h264Schema = avopt.Schema{
	"preset":                       avopt.String,
	"quality":                      avopt.Int, // constant rate factor, 0 (lossless) to 51
	"profile":                      avopt.String,
	"tune":                         avopt.String,
	"level":                        avopt.String,
	"max_reference_frames":         avopt.Int,
	"max_rate":                     avopt.String,
	"max_frames_between_keyframes": avopt.Int,
}

func h264Specific(safe avopt.Options) []string {
	var args []string
	if preset, ok := safe.String("preset"); ok {
		args = append(args, "-preset", preset)
	}
	if crf, ok := safe.Int("quality"); ok {
		args = append(args, "-crf", strconv.Itoa(crf))
	}
	if profile, ok := safe.String("profile"); ok {
		args = append(args, "-profile", profile)
	}
	if tune, ok := safe.String("tune"); ok {
		args = append(args, "-tune", tune)
	}
	if level, ok := safe.String("level"); ok {
		args = append(args, "-level", level)
	}
	if refs, ok := safe.Int("max_reference_frames"); ok {
		args = append(args, "-refs", strconv.Itoa(refs))
	}
	if rate, ok := safe.String("max_rate"); ok {
		args = append(args, "-maxrate", rate)
	}
	if g, ok := safe.Int("max_frames_between_keyframes"); ok {
		args = append(args, "-g", strconv.Itoa(g))
	}
	return args
}

func videoCodecs() []Codec {
	return []Codec{
		&videoCodec{
			name:       "theora",
			engineName: "libtheora",
			extra:      qualitySchema,
			specific: func(safe avopt.Options) []string {
				if q, ok := safe.Int("quality"); ok {
					return []string{"-qscale:v", strconv.Itoa(q)}
				}
				return nil
			},
		},
		&videoCodec{
			name:       "h264",
			engineName: "libx264",
			extra:      h264Schema,
			specific:   h264Specific,
		},
		&videoCodec{name: "divx", engineName: "mpeg4"},
		&videoCodec{name: "vp8", engineName: "libvpx"},
		&videoCodec{name: "h263", engineName: "h263"},
		&videoCodec{name: "flv", engineName: "flv"},
		&videoCodec{name: "mpeg1", engineName: "mpeg1video", adjust: mpegAspect},
		&videoCodec{name: "mpeg2", engineName: "mpeg2video", adjust: mpegAspect},
	}
}
