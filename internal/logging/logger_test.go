package logging

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "coach.log")

	logger, closer, err := New(Options{Level: "debug", File: path})
	require.NoError(t, err)
	logger.Debug().Str("session_id", "abc").Msg("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, `"message":"hello"`)
	assert.Contains(t, line, `"session_id":"abc"`)
	assert.Contains(t, line, `"app":"mathcoach"`)
}

func TestNew_RespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coach.log")

	logger, closer, err := New(Options{Level: "warn", File: path})
	require.NoError(t, err)
	logger.Info().Msg("quiet")
	logger.Warn().Msg("loud")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "quiet"))
	assert.True(t, strings.Contains(string(data), "loud"))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{in: "", want: zerolog.InfoLevel},
		{in: "DEBUG", want: zerolog.DebugLevel},
		{in: " warn ", want: zerolog.WarnLevel},
		{in: "verbose", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDefaultLogPath_XDG(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	path, err := DefaultLogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/state", "mathcoach", "mathcoach.log"), path)
}

func TestContextRoundTrip(t *testing.T) {
	assert.Equal(t, zerolog.Nop(), FromContext(context.Background()))

	logger := zerolog.New(os.Stderr).With().Str("k", "v").Logger()
	ctx := IntoContext(context.Background(), logger)
	assert.Equal(t, logger, FromContext(ctx))
}
