package restapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"railroute.dev/internal/app"
	"railroute.dev/internal/appconf"
	"railroute.dev/internal/gtfs"
	"railroute.dev/internal/logging"
	"railroute.dev/internal/matcher"
	"railroute.dev/internal/metrics"
	"railroute.dev/internal/models"
	"railroute.dev/internal/resolver"
)

// createTestApi creates a RestAPI over the Grand Est fixture with rate limiting off
// and the trip cache on.
func createTestApi(t *testing.T) *RestAPI {
	return createTestApiWithConfig(t, func(*appconf.Config) {})
}

func createTestApiWithConfig(t *testing.T, configure func(*appconf.Config)) *RestAPI {
	t.Helper()

	path, err := filepath.Abs(filepath.Join("..", "..", "testdata", "grand_est.zip"))
	require.NoError(t, err)

	gtfsConfig := gtfs.Config{
		GtfsURL: path,
		Env:     appconf.Test,
		Weights: matcher.DefaultWeights(),
		Options: resolver.DefaultOptions(),
	}
	gtfsManager, err := gtfs.InitManager(context.Background(), gtfsConfig, nil)
	require.NoError(t, err)
	t.Cleanup(gtfsManager.Shutdown)

	config := appconf.Defaults()
	config.Env = appconf.Test
	config.RateLimit = 0
	configure(&config)

	application := &app.Application{
		Config:      config,
		GtfsConfig:  gtfsConfig,
		GtfsManager: gtfsManager,
		Metrics:     metrics.NewCollector(),
	}
	application.WireMetrics()

	api := NewRestAPI(application)
	t.Cleanup(api.Close)
	return api
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	server := httptest.NewServer(api.Handler())
	defer server.Close()
	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

func serveApiAndRetrieveBody(t *testing.T, api *RestAPI, endpoint string) (*http.Response, string) {
	server := httptest.NewServer(api.Handler())
	defer server.Close()
	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "data.entry should be an object")
	return entry
}

func referencedStations(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()
	data := model.Data.(map[string]interface{})
	refs, ok := data["references"].(map[string]interface{})
	require.True(t, ok)
	stations, ok := refs["stations"].([]interface{})
	require.True(t, ok)
	return stations
}
