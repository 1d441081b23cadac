package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONWithServiceAndComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "freshfruits-billing", Out: &buf})

	c := l.Component("catalog")
	c.Info().Int("count", 10).Msg("productos cargados")
	c.Debug().Msg("no debe aparecer")

	var event map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &event))
	assert.Equal(t, "freshfruits-billing", event["service"])
	assert.Equal(t, "catalog", event["component"])
	assert.Equal(t, "productos cargados", event["message"])
	assert.EqualValues(t, 10, event["count"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
}
