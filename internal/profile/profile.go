// Package profile ships named conversion presets for common targets.
package profile

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/nigelgutzmann/video-converter/pkg/converter"
)

// Profile produces a ready conversion request for one target.
type Profile interface {
	// Name is the profile token used on the command line.
	Name() string

	// Description is a one-line summary for help output.
	Description() string

	// Request returns a fresh request for this target. Callers own the
	// returned value and may adjust it.
	Request() *converter.Request
}

var profiles = make(map[string]Profile)

// Register adds a profile to the registry.
func Register(p Profile) {
	profiles[p.Name()] = p
}

// Get returns a profile by name.
func Get(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return nil, errors.Errorf("unsupported profile: %s", name)
	}
	return p, nil
}

// Names returns the registered profile names in sorted order.
func Names() []string {
	names := maps.Keys(profiles)
	slices.Sort(names)
	return names
}
