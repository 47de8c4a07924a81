package ffmpeg

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimecodeParsing(t *testing.T) {
	tests := []struct {
		line string
		want float64
	}{
		{
			line: "frame=  135 fps= 42 q=28.0 size=     512kB time=00:00:05.64 bitrate= 743.2kbits/s",
			want: 5.64,
		},
		{
			line: "size=    2048kB time=00:01:30.00 bitrate=...",
			want: 90,
		},
		{
			line: "time=01:02:03.5",
			want: 3723.5,
		},
		{
			line: "time=10:00:00",
			want: 36000,
		},
	}

	for _, tt := range tests {
		m := timecodeRe.FindStringSubmatch(tt.line)
		require.NotNil(t, m, tt.line)
		assert.InDelta(t, tt.want, timecodeSeconds(m), 0.001, tt.line)
	}
}

func TestTimecodeNoMatch(t *testing.T) {
	for _, line := range []string{
		"Stream mapping:",
		"  Stream #0:0 -> #0:0 (h264 (native) -> h264 (libx264))",
		"Press [q] to stop, [?] for help",
	} {
		assert.Nil(t, timecodeRe.FindStringSubmatch(line), line)
	}
}

func TestSplitCRLF(t *testing.T) {
	// ffmpeg rewrites its progress line with bare carriage returns.
	input := "header line\nframe=1 time=00:00:01.00\rframe=2 time=00:00:02.00\rtrailer"

	sc := bufio.NewScanner(strings.NewReader(input))
	sc.Split(splitCRLF)

	var got []string
	for sc.Scan() {
		got = append(got, sc.Text())
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, []string{
		"header line",
		"frame=1 time=00:00:01.00",
		"frame=2 time=00:00:02.00",
		"trailer",
	}, got)
}

func TestScanLinesSkipsBlanks(t *testing.T) {
	lines := make(chan string, 16)
	go scanLines(strings.NewReader("one\n\r\n  \ntwo\r"), lines)

	var got []string
	for line := range lines {
		got = append(got, line)
	}
	assert.Equal(t, []string{"one", "two"}, got)
}

func TestIsDecodeError(t *testing.T) {
	assert.True(t, isDecodeError("[h264 @ 0x55] Error while decoding stream #0:0"))
	assert.True(t, isDecodeError("[mp3 @ 0x55] error while decoding frame"))
	assert.False(t, isDecodeError("frame=1 time=00:00:01.00"))
	assert.False(t, isDecodeError("Decoding complete"))
}
