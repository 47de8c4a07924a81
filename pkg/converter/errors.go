package converter

import "github.com/pkg/errors"

// Sentinel errors for the conversion pipeline. Construction-time
// problems (everything except ErrTimeout and ErrEngineFailure) are
// raised before any subprocess is started.
var (
	// ErrInvalidSpec marks a malformed conversion request: missing
	// mandatory fields or type errors in the request shape itself.
	ErrInvalidSpec = errors.New("invalid conversion specification")

	// ErrUnknownComponent marks a format or codec name with no
	// registered descriptor.
	ErrUnknownComponent = errors.New("unknown format or codec")

	// ErrSourceNotFound means the source is neither an existing file nor
	// a recognized remote locator.
	ErrSourceNotFound = errors.New("source not found")

	// ErrProbeFailed means the prober returned no usable data.
	ErrProbeFailed = errors.New("cannot probe source")

	// ErrNoStreams means the probed source has neither an audio nor a
	// video stream.
	ErrNoStreams = errors.New("source has no audio or video streams")

	// ErrZeroLength means the probed duration is effectively zero.
	ErrZeroLength = errors.New("zero-length media")

	// ErrTimeout means the engine produced no progress update within the
	// configured window. Surfaces through the progress stream.
	ErrTimeout = errors.New("no progress from engine within timeout")

	// ErrEngineFailure means the engine reported a decode or encode
	// error in its diagnostic stream. Surfaces through the progress
	// stream.
	ErrEngineFailure = errors.New("engine reported failure")
)
