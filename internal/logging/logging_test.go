package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "taskprog.log")

	logger, closer, err := New("debug", path)
	require.NoError(t, err)
	logger.Debug().Str("component", "test").Msg("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "hello")
	require.Contains(t, string(data), "component=test")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New("loud", "-")
	require.ErrorContains(t, err, "invalid log level")
}

func TestNew_EmptyFileDiscards(t *testing.T) {
	logger, closer, err := New("info", "")
	require.NoError(t, err)
	require.NoError(t, closer.Close())
	require.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.WarnLevel)

	logger.Info().Msg("quiet")
	logger.Warn().Msg("loud")

	require.NotContains(t, buf.String(), "quiet")
	require.Contains(t, buf.String(), "loud")
}
