// Package config loads process configuration from the environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds the settings shared by every command.
type Config struct {
	// FFmpegPath is the engine binary; resolved from PATH when left as
	// the bare name.
	FFmpegPath string `envconfig:"FFMPEG_PATH" default:"ffmpeg"`

	// ProgressTimeout bounds the wait for each progress update from the
	// engine, not the total conversion time.
	ProgressTimeout time.Duration `envconfig:"PROGRESS_TIMEOUT" default:"10s"`

	// Nice lowers the engine's scheduling priority when non-zero.
	Nice int `envconfig:"NICE" default:"0"`

	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads VIDEOCONV_-prefixed settings from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("videoconv", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return &cfg, nil
}
