package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"

	"marga.transitlab.org/internal/app"
	"marga.transitlab.org/internal/appconf"
	"marga.transitlab.org/internal/models"
	"marga.transitlab.org/internal/oracle"
	"marga.transitlab.org/internal/routing"
	"marga.transitlab.org/internal/session"
	"marga.transitlab.org/internal/transitdata"
)

// Wednesday midday, outside every peak window.
var testInstant = time.Date(2026, 8, 26, 13, 0, 0, 0, time.UTC)

func createTestApi(t *testing.T) *RestAPI {
	return createTestApiAt(t, testInstant)
}

func createTestApiAt(t *testing.T, instant time.Time) *RestAPI {
	t.Helper()

	store, err := transitdata.Load("../../testdata")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine, err := routing.NewEngine(store, oracle.Fixed{}, routing.FixedClock{T: instant}, logger)
	require.NoError(t, err)

	sessions := session.NewStore(time.Minute)
	t.Cleanup(sessions.Stop)

	application := &app.Application{
		Config: appconf.Config{
			Env:     appconf.Test,
			ApiKeys: []string{"TEST"},
		},
		Logger:   logger,
		Engine:   engine,
		Sessions: sessions,
	}

	return &RestAPI{Application: application}
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the
// specified endpoint, and returns the response and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()

	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer resp.Body.Close()

	var model models.ResponseModel
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(body) > 0 {
		// Validation errors use a different shape; ignore decode failures
		// and let callers inspect the status code.
		_ = json.Unmarshal(body, &model)
	}
	return resp, model
}

func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "response has no data object")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "response has no entry")
	return entry
}

func listOf(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "response has no data object")
	list, ok := data["list"].([]interface{})
	require.True(t, ok, "response has no list")
	return list
}
