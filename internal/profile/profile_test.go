package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesSorted(t *testing.T) {
	assert.Equal(t, []string{"instagram-reel", "reddit", "web-vp8", "x-twitter"}, Names())
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("myspace")
	assert.Error(t, err)
}

func TestEveryProfileBuildsValidRequests(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p, err := Get(name)
			require.NoError(t, err)
			assert.NotEmpty(t, p.Description())

			req := p.Request()
			require.NotNil(t, req)
			assert.NotEmpty(t, req.Format)
			assert.NotNil(t, req.Video)

			// Callers own the returned request; repeated calls must not
			// alias each other.
			req.Video["codec"] = "mutated"
			fresh := p.Request()
			assert.NotEqual(t, "mutated", fresh.Video["codec"])
		})
	}
}
