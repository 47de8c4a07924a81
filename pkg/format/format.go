// Package format maps container format names onto ffmpeg muxer
// selections.
package format

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Format describes one container format. Descriptors are stateless and
// reusable.
type Format struct {
	name       string
	engineName string
}

// Name is the public format token used in conversion requests.
func (f *Format) Name() string { return f.name }

// EngineName is ffmpeg's muxer token for the container.
func (f *Format) EngineName() string { return f.engineName }

// Parse validates that the request names this format and produces the
// container-level argument fragment.
func (f *Format) Parse(options map[string]interface{}) ([]string, error) {
	name, ok := options["format"].(string)
	if !ok || name != f.name {
		return nil, errors.Errorf("format name mismatch: %q, expected %q", options["format"], f.name)
	}
	return []string{"-f", f.engineName}, nil
}

// Registry maps format names to descriptors, populated once and
// read-only afterwards.
type Registry struct {
	formats map[string]*Format
}

// NewRegistry builds a registry over the given formats.
func NewRegistry(formats ...*Format) *Registry {
	r := &Registry{formats: make(map[string]*Format, len(formats))}
	for _, f := range formats {
		r.formats[f.name] = f
	}
	return r
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (*Format, error) {
	f, ok := r.formats[name]
	if !ok {
		return nil, errors.Errorf("unknown format: %s", name)
	}
	return f, nil
}

// Names returns the registered format names in sorted order.
func (r *Registry) Names() []string {
	names := maps.Keys(r.formats)
	slices.Sort(names)
	return names
}

var defaultRegistry = NewRegistry(
	&Format{name: "ogg", engineName: "ogg"},
	&Format{name: "avi", engineName: "avi"},
	&Format{name: "mkv", engineName: "matroska"},
	&Format{name: "webm", engineName: "webm"},
	&Format{name: "flv", engineName: "flv"},
	&Format{name: "mov", engineName: "mov"},
	&Format{name: "mp4", engineName: "mp4"},
	&Format{name: "mpeg", engineName: "mpegts"},
	&Format{name: "mp3", engineName: "mp3"},
)

// Default returns the process-wide format registry.
func Default() *Registry { return defaultRegistry }
