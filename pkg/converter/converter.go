// Package converter composes validated ffmpeg argument lists from
// declarative conversion requests and drives the engine collaborator,
// reporting progress as a lazy percentage stream.
package converter

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"github.com/nigelgutzmann/video-converter/pkg/codec"
	"github.com/nigelgutzmann/video-converter/pkg/format"
)

// DefaultTimeout is the per-update progress timeout used when the
// caller does not specify one.
const DefaultTimeout = 10 * time.Second

// Converter encapsulates the format and codec registries plus the
// external engine and prober collaborators.
type Converter struct {
	engine Engine
	prober Prober
	log    hclog.Logger

	formats  *format.Registry
	audio    *codec.Registry
	video    *codec.Registry
	subtitle *codec.Registry
}

// New creates a Converter over the default registries. A nil logger
// disables logging.
func New(engine Engine, prober Prober, logger hclog.Logger) *Converter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Converter{
		engine:   engine,
		prober:   prober,
		log:      logger,
		formats:  format.Default(),
		audio:    codec.DefaultAudio(),
		video:    codec.DefaultVideo(),
		subtitle: codec.DefaultSubtitle(),
	}
}

// WithRegistries replaces the descriptor registries, mainly for tests.
func (c *Converter) WithRegistries(f *format.Registry, audio, video, subtitle *codec.Registry) *Converter {
	c.formats = f
	c.audio = audio
	c.video = video
	c.subtitle = subtitle
	return c
}

// Formats lists the registered container format names.
func (c *Converter) Formats() []string { return c.formats.Names() }

// AudioCodecs lists the registered audio codec names.
func (c *Converter) AudioCodecs() []string { return c.audio.Names() }

// VideoCodecs lists the registered video codec names.
func (c *Converter) VideoCodecs() []string { return c.video.Names() }

// SubtitleCodecs lists the registered subtitle codec names.
func (c *Converter) SubtitleCodecs() []string { return c.subtitle.Names() }

// BuildArgs translates a request into the ordered engine argument list.
// pass is 0 for single-pass encoding, or 1/2 for the respective pass of
// a two-pass run; the pass-control tokens are the only difference
// between the two lists of one request.
func (c *Converter) BuildArgs(req *Request, pass int) ([]string, error) {
	if req == nil {
		return nil, errors.Wrap(ErrInvalidSpec, "no request")
	}
	if req.Format == "" {
		return nil, errors.Wrap(ErrInvalidSpec, "format not specified")
	}
	f, err := c.formats.Get(req.Format)
	if err != nil {
		return nil, errors.Wrapf(ErrUnknownComponent, "format %q", req.Format)
	}
	formatArgs, err := f.Parse(map[string]interface{}{"format": req.Format})
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSpec, err.Error())
	}

	if req.Audio == nil && req.Video == nil {
		return nil, errors.Wrap(ErrInvalidSpec, "neither audio nor video streams requested")
	}

	audioArgs, err := c.streamArgs(c.audio, req.Audio)
	if err != nil {
		return nil, err
	}
	videoArgs, err := c.streamArgs(c.video, req.Video)
	if err != nil {
		return nil, err
	}
	subtitleArgs, err := c.streamArgs(c.subtitle, req.Subtitle)
	if err != nil {
		return nil, err
	}

	if req.Map != nil {
		formatArgs = append(formatArgs, "-map", strconv.Itoa(*req.Map))
	}
	if req.Start != "" {
		start, err := parseTime(req.Start)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidSpec, err.Error())
		}
		formatArgs = append(formatArgs, "-ss", start)
	}
	if req.Duration != "" {
		dur, err := parseTime(req.Duration)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidSpec, err.Error())
		}
		formatArgs = append(formatArgs, "-t", dur)
	}

	args := make([]string, 0, len(audioArgs)+len(videoArgs)+len(subtitleArgs)+len(formatArgs)+2)
	args = append(args, audioArgs...)
	args = append(args, videoArgs...)
	args = append(args, subtitleArgs...)
	args = append(args, formatArgs...)

	switch pass {
	case 1:
		args = append(args, "-pass", "1")
	case 2:
		args = append(args, "-pass", "2")
	}
	return args, nil
}

// streamArgs resolves one stream section through its registry. A nil
// section selects the kind's null descriptor.
func (c *Converter) streamArgs(reg *codec.Registry, section map[string]interface{}) ([]string, error) {
	if section == nil {
		null, err := reg.Get("")
		if err != nil {
			return nil, err
		}
		return null.Parse(nil)
	}

	raw, ok := section["codec"]
	if !ok {
		return nil, errors.Wrap(ErrInvalidSpec, "codec not specified")
	}
	name, ok := raw.(string)
	if !ok {
		return nil, errors.Wrap(ErrInvalidSpec, "codec name must be a string")
	}
	cd, err := reg.Get(name)
	if err != nil {
		return nil, errors.Wrapf(ErrUnknownComponent, "codec %q", name)
	}
	args, err := cd.Parse(section)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSpec, err.Error())
	}
	return args, nil
}

// ConvertOptions tunes one conversion run.
type ConvertOptions struct {
	// TwoPass runs the engine twice, first to gather statistics, then to
	// encode with them. Progress splits into two halves.
	TwoPass bool

	// Timeout bounds the wait for each progress update from the engine,
	// not the total conversion time. Zero selects DefaultTimeout.
	Timeout time.Duration

	// Nice lowers the engine's scheduling priority when non-zero.
	Nice int
}

// Convert validates the request against the probed source and starts the
// conversion. All validation happens here, before any subprocess runs;
// the returned Progress yields percentages until the conversion
// finishes, fails, or is cancelled.
func (c *Converter) Convert(ctx context.Context, infile, outfile string, req *Request, opts ConvertOptions) (*Progress, error) {
	if req == nil {
		return nil, errors.Wrap(ErrInvalidSpec, "no request")
	}
	if _, err := os.Stat(infile); err != nil && !IsURL(infile) {
		return nil, errors.Wrap(ErrSourceNotFound, infile)
	}

	info, err := c.prober.Probe(infile)
	if err != nil {
		return nil, errors.Wrap(ErrProbeFailed, err.Error())
	}
	if info == nil {
		return nil, errors.Wrap(ErrProbeFailed, infile)
	}
	if info.Audio == nil && info.Video == nil {
		return nil, errors.Wrap(ErrNoStreams, infile)
	}

	// Geometry resolution needs the real source dimensions.
	if info.Video != nil && req.Video != nil {
		req = req.clone()
		req.Video["src_width"] = info.Video.Width
		req.Video["src_height"] = info.Video.Height
		if info.Video.Rotate != 0 {
			req.Video["src_rotate"] = info.Video.Rotate
		}
	}

	if info.Format.Duration < 0.01 {
		return nil, errors.Wrap(ErrZeroLength, infile)
	}

	var passes [][]string
	if opts.TwoPass {
		first, err := c.BuildArgs(req, 1)
		if err != nil {
			return nil, err
		}
		second, err := c.BuildArgs(req, 2)
		if err != nil {
			return nil, err
		}
		// Both passes share one statistics log, isolated per run so
		// concurrent conversions cannot clobber each other.
		logPrefix := filepath.Join(os.TempDir(), "ffmpeg2pass-"+uuid.NewString())
		first = append(first, "-passlogfile", logPrefix)
		second = append(second, "-passlogfile", logPrefix)
		passes = [][]string{first, second}
	} else {
		args, err := c.BuildArgs(req, 0)
		if err != nil {
			return nil, err
		}
		passes = [][]string{args}
	}

	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	runCtx, cancel := context.WithCancel(ctx)
	p := newProgress(cancel)
	go c.drive(runCtx, p, infile, outfile, passes, info.Format.Duration, opts)
	return p, nil
}

// drive runs each pass in order, projecting native timecodes onto the
// overall percentage range. It owns the progress channel.
func (c *Converter) drive(ctx context.Context, p *Progress, infile, outfile string, passes [][]string, duration float64, opts ConvertOptions) {
	defer close(p.ch)
	defer p.cancel()

	scale := 100.0 / float64(len(passes))
	run := RunOptions{Timeout: opts.Timeout, Nice: opts.Nice}

	for i, args := range passes {
		base := scale * float64(i)
		c.log.Debug("starting engine pass", "pass", i+1, "args", args)

		updates, err := c.engine.Run(ctx, infile, outfile, args, run)
		if err != nil {
			p.setErr(err)
			return
		}
		for u := range updates {
			if u.Err != nil {
				p.setErr(u.Err)
				return
			}
			if u.Timecode <= 0 {
				if u.Line != "" {
					c.log.Trace("engine", "line", u.Line)
				}
				continue
			}
			pct := int(base + scale*u.Timecode/duration)
			if pct < 0 {
				pct = 0
			} else if pct > 100 {
				pct = 100
			}
			select {
			case p.ch <- pct:
			case <-ctx.Done():
				p.setErr(ctx.Err())
				return
			}
		}
	}
}
