package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestComponentField(t *testing.T) {
	var buf bytes.Buffer
	l := Component(NewWithWriter(&buf, "info"), "watcher")
	l.Info().Str("file", "1366000773.jpg").Msg("queued")
	l.Debug().Msg("dropped")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "watcher", entry["component"])
	assert.Equal(t, "queued", entry["message"])
	assert.Equal(t, "1366000773.jpg", entry["file"])
	assert.Contains(t, entry, "time")
}
