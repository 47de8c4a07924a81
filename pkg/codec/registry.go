package codec

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Registry maps public codec names to descriptors for one stream kind.
// Registries are populated once and read-only afterwards; the empty name
// resolves to the kind's null descriptor.
type Registry struct {
	codecs map[string]Codec
	null   Codec
}

// NewRegistry builds a registry over the given descriptors with null as
// the empty-name fallback.
func NewRegistry(null Codec, codecs ...Codec) *Registry {
	r := &Registry{
		codecs: make(map[string]Codec, len(codecs)),
		null:   null,
	}
	for _, c := range codecs {
		r.codecs[c.Name()] = c
	}
	return r
}

// Get returns the descriptor registered under name. The empty name
// selects the null descriptor (stream disabled).
func (r *Registry) Get(name string) (Codec, error) {
	if name == "" {
		return r.null, nil
	}
	c, ok := r.codecs[name]
	if !ok {
		return nil, errors.Errorf("unknown codec: %s", name)
	}
	return c, nil
}

// Names returns the registered codec names in sorted order.
func (r *Registry) Names() []string {
	names := maps.Keys(r.codecs)
	slices.Sort(names)
	return names
}

var (
	defaultAudio    = NewRegistry(nullAudio{}, append(audioCodecs(), copyAudio{})...)
	defaultVideo    = NewRegistry(nullVideo{}, append(videoCodecs(), copyVideo{})...)
	defaultSubtitle = NewRegistry(nullSubtitle{}, append(subtitleCodecs(), copySubtitle{})...)
)

// DefaultAudio returns the process-wide audio codec registry.
func DefaultAudio() *Registry { return defaultAudio }

// DefaultVideo returns the process-wide video codec registry.
func DefaultVideo() *Registry { return defaultVideo }

// DefaultSubtitle returns the process-wide subtitle codec registry.
func DefaultSubtitle() *Registry { return defaultSubtitle }
