package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_JSONWithService(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf, Service: "movie-api"})
	log.Debug().Str("k", "v").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "movie-api", entry["service"])
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "debug", entry["level"])
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second, Level: "trace"})

	l := Get()
	l.Info().Msg("x")
	assert.NotEmpty(t, first.String())
	assert.Empty(t, second.String())
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	assert.Panics(t, func() { Get() })
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, parseLevel(" WARNING "))
	assert.Equal(t, zerolog.TraceLevel, parseLevel("trace"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("loud"))
}

func TestComponent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Output: &buf})
	cl := Component("mailer")
	cl.Info().Msg("sent")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "mailer", entry["component"])
}
