package servers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T) (*fiber.App, *Repository) {
	feature := NewFeature(setupDB(t), true, zap.NewNop())
	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app, feature.Repository()
}

func TestHandler_UpdateAndGet(t *testing.T) {
	app, _ := setupApp(t)

	body := `{"name":"alpha","modpack":"atm9","installed_version":"0.2.1","live_manifest":"manifests/alpha.json","target_manifest":"manifests/atm9-0.2.2.json"}`
	req := httptest.NewRequest("PUT", "/servers/3", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/servers/3", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var server Server
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&server))
	assert.Equal(t, uint(3), server.ID)
	assert.Equal(t, "alpha", server.Name)
	assert.Equal(t, "manifests/atm9-0.2.2.json", server.TargetManifest)

	resp, err = app.Test(httptest.NewRequest("GET", "/servers", nil))
	require.NoError(t, err)
	var list []Server
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 1)
}

func TestHandler_Errors(t *testing.T) {
	app, _ := setupApp(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"NotFound", "GET", "/servers/99", "", fiber.StatusNotFound},
		{"BadID", "GET", "/servers/abc", "", fiber.StatusBadRequest},
		{"MissingName", "PUT", "/servers/1", `{"modpack":"atm9"}`, fiber.StatusBadRequest},
		{"BadBody", "PUT", "/servers/1", `{`, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestFeature_DisabledWithoutDB(t *testing.T) {
	feature := NewFeature(nil, true, zap.NewNop())
	assert.Equal(t, "servers", feature.Name())
	assert.False(t, feature.IsEnabled())
	assert.Nil(t, feature.Repository())
}
