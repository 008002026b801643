//go:build !integration

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
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"WARNING", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.level))
		})
	}
}

func TestInitWithWriter(t *testing.T) {
	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		InitWithWriter(&buf, "debug", false)
		defer Init("info", false)

		l := Logger()
		l.Debug().Str("key", "cart").Msg("hello")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "hello", entry["message"])
		assert.Equal(t, "cart", entry["key"])
		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	})

	t.Run("pretty output", func(t *testing.T) {
		var buf bytes.Buffer
		InitWithWriter(&buf, "info", true)
		defer Init("info", false)

		l := Logger()
		l.Info().Msg("pretty")

		assert.Contains(t, buf.String(), "pretty")
		assert.False(t, json.Valid(buf.Bytes()))
	})
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", false)
	defer Init("info", false)

	l := Component("cart")
	l.Info().Msg("loaded")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "cart", entry["component"])
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", false)
	defer Init("info", false)

	l := WithContext(map[string]interface{}{
		"session_id": "abc",
		"items":      3,
	})
	l.Info().Msg("ctx")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc", entry["session_id"])
	assert.Equal(t, float64(3), entry["items"])
}
