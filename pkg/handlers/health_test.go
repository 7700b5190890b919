package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/copa-network/copa-console/pkg/config"
)

func TestHealth(t *testing.T) {
	h := NewHealthHandler(&config.Config{}, zap.NewNop())

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestPing(t *testing.T) {
	h := NewHealthHandler(&config.Config{Version: "1.2.3", Env: "local"}, zap.NewNop())

	w := httptest.NewRecorder()
	h.Ping(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp PingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, "copa-console", resp.Service)
	assert.Equal(t, "local", resp.Environment)
}
