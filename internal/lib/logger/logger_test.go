package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/linemk/vetcent/internal/lib/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProdIsJSONInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.EnvProd, &buf)

	log.Debug("hidden")
	log.Info("order submitted", slog.String("op", "service.CartService.CreateOrder"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "only one JSON line expected")
	assert.Equal(t, "order submitted", entry["msg"])
	assert.Equal(t, "service.CartService.CreateOrder", entry["op"])
}

func TestNew_DevLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger.New(logger.EnvDev, &buf).Debug("visible")
	assert.Contains(t, buf.String(), `"msg":"visible"`)
}

func TestNew_LocalIsPretty(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.EnvLocal, &buf).With(slog.String("op", "handlers.LoginHandler"))

	log.Error("login failed", slog.Any("error", errors.New("bad password")))

	out := buf.String()
	assert.Contains(t, out, "login failed")
	assert.Contains(t, out, `"op": "handlers.LoginHandler"`)
	assert.Contains(t, out, `"error": "bad password"`)
}
