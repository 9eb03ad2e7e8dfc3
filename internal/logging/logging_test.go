package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.InfoLevel)

	log.Debug().Msg("hidden")
	log.Info().Str("attempt", "a1").Msg("shown")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "shown", rec["message"])
	assert.Equal(t, "a1", rec["attempt"])
	assert.Contains(t, rec, "time")
}

func TestOpenFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	path := filepath.Join(t.TempDir(), "logs", "launcher.log")

	log, closer, err := OpenFile(path)
	require.NoError(t, err)
	log.Debug().Msg("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
}

func TestConsole_HumanReadable(t *testing.T) {
	var buf bytes.Buffer
	log := Console(&buf, zerolog.DebugLevel)

	log.Trace().Msg("hidden")
	log.Debug().Str("attempt", "a1").Msg("spawned")

	out := buf.String()
	assert.Contains(t, out, "spawned")
	assert.Contains(t, out, "a1")
	assert.NotContains(t, out, "hidden")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
