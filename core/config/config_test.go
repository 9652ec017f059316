package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	require.True(t, cfg.CallBase)
	require.Equal(t, FormatJSON, cfg.LogFormat)
	require.Equal(t, "substitute", cfg.Tracing.ServiceName)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, logrus.WarnLevel, lvl)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvName, "greeter")
	t.Setenv(EnvLoggingLevel, "debug")
	t.Setenv(EnvLoggingFormat, "text")
	t.Setenv(EnvCallBase, "false")
	t.Setenv(EnvTracingEndpoint, "localhost:4318")
	t.Setenv(EnvTracingServiceName, "tests")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, &Config{
		Name:      "greeter",
		LogLevel:  "debug",
		LogFormat: "text",
		CallBase:  false,
		Tracing: Tracing{
			Endpoint:    "localhost:4318",
			ServiceName: "tests",
		},
	}, cfg)
}

func TestFromEnvErrors(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
		err   error
	}{
		{name: "level", key: EnvLoggingLevel, value: "loud", err: ErrInvalidLogLevel},
		{name: "format", key: EnvLoggingFormat, value: "xml", err: ErrInvalidLogFormat},
		{name: "call base", key: EnvCallBase, value: "maybe", err: ErrInvalidCallBase},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := FromEnv()
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestFromBytes(t *testing.T) {
	cfg, err := FromBytes([]byte(`{"name":"fetcher","callBase":false,"tracing":{"endpoint":"collector:4318"}}`))
	require.NoError(t, err)
	require.Equal(t, "fetcher", cfg.Name)
	require.False(t, cfg.CallBase)
	require.Equal(t, "collector:4318", cfg.Tracing.Endpoint)
	require.Equal(t, "substitute", cfg.Tracing.ServiceName)
	require.Equal(t, "warning", cfg.LogLevel)

	_, err = FromBytes(nil)
	require.ErrorIs(t, err, ErrCfgBytesEmpty)

	_, err = FromBytes([]byte(`{"logLevel":"loud"}`))
	require.ErrorIs(t, err, ErrInvalidLogLevel)

	_, err = FromBytes([]byte(`{`))
	require.Error(t, err)
}
