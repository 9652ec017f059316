// Package logger provides the logrus loggers used by substitutes.
package logger

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/anoideaopen/substitute/core/config"
	"github.com/sirupsen/logrus"
)

var ErrUnknownFormat = errors.New("unknown log format")

var (
	once sync.Once
	lg   *logrus.Logger
)

// Logger returns the process-wide logger configured from SUBSTITUTE_LOGGING_LEVEL
// (default "warning") and SUBSTITUTE_LOGGING_FORMAT ("json" or "text"). Invalid settings fall
// back to the defaults.
func Logger() *logrus.Logger {
	once.Do(func() {
		var err error
		lg, err = New(os.Getenv(config.EnvLoggingLevel), os.Getenv(config.EnvLoggingFormat))
		if err != nil {
			lg, _ = New("", "")
			lg.WithError(err).Warn("invalid logging settings, using defaults")
		}
	})

	return lg
}

// New returns a logger writing to stderr with the given level and format. Empty values select
// the defaults.
func New(level, format string) (*logrus.Logger, error) {
	cfg := config.Default()
	if level != "" {
		cfg.LogLevel = level
	}
	if format != "" {
		cfg.LogFormat = format
	}

	return FromConfig(cfg)
}

// FromConfig returns a logger for the level and format of cfg.
func FromConfig(cfg *config.Config) (*logrus.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	formatter, err := formatter(cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(lvl)
	l.SetFormatter(formatter)

	return l, nil
}

func formatter(format string) (logrus.Formatter, error) {
	switch strings.ToLower(format) {
	case "", config.FormatJSON:
		return &logrus.JSONFormatter{}, nil
	case config.FormatText:
		return &logrus.TextFormatter{FullTimestamp: true}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
