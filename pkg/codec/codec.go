package codec

import (
	"fmt"

	"github.com/pkg/errors"
)

// Codec translates one sanitized option slice into the ffmpeg argument
// fragment for a single stream. Descriptors are stateless and safe for
// reuse across conversions.
type Codec interface {
	// Name is the public codec token used in conversion requests.
	Name() string

	// EngineName is ffmpeg's own token for the codec, possibly distinct
	// from Name (e.g. mp3 -> libmp3lame).
	EngineName() string

	// Parse validates and sanitizes raw options and produces the
	// argument fragment for this codec.
	Parse(raw map[string]interface{}) ([]string, error)
}

// checkName verifies that the request names this descriptor. The facade
// already resolves descriptors by name, so a mismatch means the caller
// bypassed the registry.
func checkName(raw map[string]interface{}, want string) error {
	name, ok := raw["codec"].(string)
	if !ok || name != want {
		return errors.Errorf("invalid codec name %q, expected %q", raw["codec"], want)
	}
	return nil
}

// extendVF appends a filter expression to an existing -vf value, or adds
// the -vf flag if none is present yet. A previously set chain is never
// overwritten.
func extendVF(args []string, filter string) []string {
	for i, a := range args {
		if a == "-vf" && i+1 < len(args) {
			args[i+1] = args[i+1] + "," + filter
			return args
		}
	}
	return append(args, "-vf", filter)
}

// appendKbps appends a bitrate flag with ffmpeg's "k" suffix.
func appendKbps(args []string, flag string, kbps int) []string {
	return append(args, flag, fmt.Sprintf("%dk", kbps))
}
