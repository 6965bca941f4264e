package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shared-api/pkg/logger"
)

func TestLogger_JSONConCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	log.WithCorrelationID("abc123").Info().Str("path", "/api").Msg("petición")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc123", entry["correlation_id"])
	assert.Equal(t, "/api", entry["path"])
	assert.Equal(t, "info", entry["level"])
}

func TestLogger_NivelFiltraEventos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	log.Info().Msg("descartado")
	assert.Zero(t, buf.Len(), "info no debe escribirse con nivel warn")

	log.Error().Msg("escrito")
	assert.Contains(t, buf.String(), "escrito")
}

func TestLogger_OrNop(t *testing.T) {
	l := logger.OrNop(nil)
	require.NotNil(t, l)
	l.Info().Msg("no falla")
}
