package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"github.com/nigelgutzmann/video-converter/pkg/converter"
)

// Runner drives the ffmpeg binary as a subprocess.
type Runner struct {
	// FFmpegPath is the engine binary; "ffmpeg" from PATH when empty.
	FFmpegPath string

	log hclog.Logger
}

// NewRunner creates a Runner. A nil logger disables logging.
func NewRunner(path string, logger hclog.Logger) *Runner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Runner{FFmpegPath: path, log: logger}
}

var timecodeRe = regexp.MustCompile(`time=(\d+):(\d+):(\d+(?:\.\d+)?)`)

// Run starts `ffmpeg -i infile <args> -y outfile` and yields progress
// events until the process exits. Each update must arrive within
// opts.Timeout or the run fails with ErrTimeout; cancelling ctx kills
// the subprocess and closes the stream.
func (r *Runner) Run(ctx context.Context, infile, outfile string, args []string, opts converter.RunOptions) (<-chan converter.Update, error) {
	name := r.FFmpegPath
	if name == "" {
		name = "ffmpeg"
	}

	argv := make([]string, 0, len(args)+4)
	argv = append(argv, "-i", infile)
	argv = append(argv, args...)
	argv = append(argv, "-y", outfile)

	var cmd *exec.Cmd
	if opts.Nice > 0 {
		niced := append([]string{"-n", strconv.Itoa(opts.Nice), name}, argv...)
		cmd = exec.CommandContext(ctx, "nice", niced...)
	} else {
		cmd = exec.CommandContext(ctx, name, argv...)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	r.log.Debug("starting engine", "cmd", name, "args", argv)
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "failed to start engine")
	}

	lines := make(chan string, 64)
	go scanLines(stderr, lines)

	updates := make(chan converter.Update)
	go r.pump(ctx, cmd, lines, updates, opts.Timeout)
	return updates, nil
}

// scanLines splits the engine's stderr on both \n and \r; ffmpeg
// rewrites its progress line with carriage returns.
func scanLines(rd io.Reader, out chan<- string) {
	defer close(out)
	sc := bufio.NewScanner(rd)
	sc.Split(splitCRLF)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out <- line
		}
	}
}

func splitCRLF(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// pump turns stderr lines into updates, enforcing the per-update
// timeout, and reaps the process when the stream ends either way.
func (r *Runner) pump(ctx context.Context, cmd *exec.Cmd, lines <-chan string, updates chan<- converter.Update, timeout time.Duration) {
	defer close(updates)

	send := func(u converter.Update) bool {
		select {
		case updates <- u:
			return true
		case <-ctx.Done():
			return false
		}
	}

	var lastLine string
	for {
		var expired <-chan time.Time
		if timeout > 0 {
			expired = time.After(timeout)
		}

		select {
		case line, ok := <-lines:
			if !ok {
				err := cmd.Wait()
				if err != nil && ctx.Err() == nil {
					send(converter.Update{Err: errors.Wrapf(converter.ErrEngineFailure, "%v: %s", err, lastLine)})
				}
				return
			}
			lastLine = line

			if isDecodeError(line) {
				send(converter.Update{Line: line, Err: errors.Wrap(converter.ErrEngineFailure, line)})
				r.reap(cmd, lines)
				return
			}

			u := converter.Update{Line: line}
			if m := timecodeRe.FindStringSubmatch(line); m != nil {
				u.Timecode = timecodeSeconds(m)
			}
			if !send(u) {
				r.reap(cmd, lines)
				return
			}

		case <-expired:
			send(converter.Update{Err: errors.Wrapf(converter.ErrTimeout, "after %s", timeout)})
			r.reap(cmd, lines)
			return

		case <-ctx.Done():
			// CommandContext kills the process on cancellation; drain the
			// scanner so its goroutine can finish.
			r.reap(cmd, lines)
			return
		}
	}
}

func (r *Runner) reap(cmd *exec.Cmd, lines <-chan string) {
	if cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	for range lines {
	}
	_ = cmd.Wait()
}

func isDecodeError(line string) bool {
	return strings.Contains(line, "Error while decoding") ||
		strings.Contains(line, "error while decoding")
}

func timecodeSeconds(m []string) float64 {
	hours, _ := strconv.ParseFloat(m[1], 64)
	minutes, _ := strconv.ParseFloat(m[2], 64)
	seconds, _ := strconv.ParseFloat(m[3], 64)
	return hours*3600 + minutes*60 + seconds
}
