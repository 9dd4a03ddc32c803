package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbeisheim/chessrules/internal/service"
)

func TestEnvOr(t *testing.T) {
	const key = "CHESS_TEST_ENV_OR"
	os.Unsetenv(key)
	assert.Equal(t, "fallback", envOr(key, "fallback"))

	os.Setenv(key, "set")
	defer os.Unsetenv(key)
	assert.Equal(t, "set", envOr(key, "fallback"))
}

func TestRoutes(t *testing.T) {
	gs := service.NewGameService(service.NewGameManager())
	app := newApp(config{addr: ":0", origin: "http://localhost:5173"}, gs)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/game/create", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Client-ID"))

	req := httptest.NewRequest(http.MethodPost, "/api/game/import", strings.NewReader(`{"fen":"bogus"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ws/game/abc", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}
