// Package config holds the settings shared by the substitutes of a test run.
//
// A Config comes from Default, from SUBSTITUTE_* environment variables (FromEnv) or from JSON
// (FromBytes) and is applied to a substitute with core.WithConfig:
//
//	cfg, err := config.FromEnv()
//	if err != nil {
//	    t.Fatal(err)
//	}
//	sub := core.MustNew[Greeter](core.WithConfig(cfg))
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Environment variables read by FromEnv.
const (
	EnvName               = "SUBSTITUTE_NAME"
	EnvLoggingLevel       = "SUBSTITUTE_LOGGING_LEVEL"
	EnvLoggingFormat      = "SUBSTITUTE_LOGGING_FORMAT"
	EnvCallBase           = "SUBSTITUTE_CALL_BASE"
	EnvTracingEndpoint    = "SUBSTITUTE_TRACING_ENDPOINT"
	EnvTracingCACerts     = "SUBSTITUTE_TRACING_CA_CERTS"
	EnvTracingServiceName = "SUBSTITUTE_TRACING_SERVICE_NAME"
)

// Log formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

const (
	defaultLogLevel    = "warning"
	defaultServiceName = "substitute"
)

var (
	ErrCfgBytesEmpty    = errors.New("config bytes is empty")
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidLogFormat = errors.New("invalid log format")
	ErrInvalidCallBase  = errors.New("invalid call base flag")
)

// Tracing configures the OTLP trace exporter. An empty Endpoint disables export.
type Tracing struct {
	Endpoint    string `json:"endpoint,omitempty"`
	CACerts     string `json:"caCerts,omitempty"` // base64 encoded PEM bundle
	ServiceName string `json:"serviceName,omitempty"`
}

// Config is the configuration of a substitute.
type Config struct {
	Name      string  `json:"name,omitempty"`
	LogLevel  string  `json:"logLevel,omitempty"`
	LogFormat string  `json:"logFormat,omitempty"`
	CallBase  bool    `json:"callBase"` // forward unconfigured calls of partial substitutes
	Tracing   Tracing `json:"tracing"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LogLevel:  defaultLogLevel,
		LogFormat: FormatJSON,
		CallBase:  true,
		Tracing: Tracing{
			ServiceName: defaultServiceName,
		},
	}
}

// FromEnv returns the default configuration overridden by the SUBSTITUTE_* variables that
// are set.
func FromEnv() (*Config, error) {
	cfg := Default()

	if v, ok := os.LookupEnv(EnvName); ok {
		cfg.Name = v
	}
	if v, ok := os.LookupEnv(EnvLoggingLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLoggingFormat); ok && v != "" {
		cfg.LogFormat = v
	}
	if v, ok := os.LookupEnv(EnvCallBase); ok && v != "" {
		callBase, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidCallBase, EnvCallBase, v)
		}
		cfg.CallBase = callBase
	}
	if v, ok := os.LookupEnv(EnvTracingEndpoint); ok {
		cfg.Tracing.Endpoint = v
	}
	if v, ok := os.LookupEnv(EnvTracingCACerts); ok {
		cfg.Tracing.CACerts = v
	}
	if v, ok := os.LookupEnv(EnvTracingServiceName); ok && v != "" {
		cfg.Tracing.ServiceName = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromBytes parses JSON-encoded configuration. Fields missing from the JSON keep their
// defaults.
func FromBytes(cfgBytes []byte) (*Config, error) {
	if len(cfgBytes) == 0 {
		return nil, ErrCfgBytesEmpty
	}

	cfg := Default()
	if err := json.Unmarshal(cfgBytes, cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the log level and format.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}

	switch strings.ToLower(c.LogFormat) {
	case "", FormatJSON, FormatText:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}

	return nil
}

// Level returns the parsed log level; an empty level is the default one.
func (c *Config) Level() (logrus.Level, error) {
	level := c.LogLevel
	if level == "" {
		level = defaultLogLevel
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidLogLevel, err)
	}

	return lvl, nil
}
