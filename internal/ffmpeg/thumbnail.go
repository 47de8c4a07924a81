package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Thumbnail extracts a single frame from infile at the given offset in
// seconds and writes it to outfile. size is an optional WxH string.
func (r *Runner) Thumbnail(ctx context.Context, infile string, at float64, outfile, size string) error {
	name := r.FFmpegPath
	if name == "" {
		name = "ffmpeg"
	}

	argv := []string{
		"-ss", fmt.Sprintf("%.2f", at),
		"-i", infile,
		"-vframes", "1",
		"-f", "image2",
	}
	if size != "" {
		argv = append(argv, "-s", size)
	}
	argv = append(argv, "-y", outfile)

	cmd := exec.CommandContext(ctx, name, argv...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "thumbnail extraction failed: %s", lastLine(stderr.String()))
	}

	info, err := os.Stat(outfile)
	if err != nil || info.Size() == 0 {
		return errors.Errorf("engine produced no thumbnail: %s", lastLine(stderr.String()))
	}
	return nil
}

func lastLine(s string) string {
	lines := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
