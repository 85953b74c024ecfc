package restapi

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteHandlerFindsShortestPath(t *testing.T) {
	api, resp, model := serveAndRetrieveEndpoint(t, "/api/route/StopArea:PE/StopArea:SB")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	entry := entryOf(t, model)
	assert.Equal(t, true, entry["found"])
	assert.Equal(t, []interface{}{"StopArea:PE", "StopArea:MV", "StopArea:NV", "StopArea:SB"}, entry["path"])
	assert.Equal(t, float64(15600), entry["durationSeconds"])
	assert.Equal(t, "4.33 hours", entry["durationText"])
	assert.Len(t, referencedStations(t, model), 4)
	assert.Equal(t, float64(1), testutil.ToFloat64(api.Metrics.RouterCalls))
}

func TestRouteHandlerUnreachable(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/route/StopArea:MZ/StopArea:PE")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	entry := entryOf(t, model)
	assert.Equal(t, false, entry["found"])
	assert.Empty(t, entry["path"])
	assert.NotContains(t, entry, "durationText")
	assert.Empty(t, referencedStations(t, model))
}

func TestRouteHandlerSameStation(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/route/StopArea:NV/StopArea:NV")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	entry := entryOf(t, model)
	assert.Equal(t, true, entry["found"])
	assert.Equal(t, []interface{}{"StopArea:NV"}, entry["path"])
	assert.Equal(t, float64(0), entry["durationSeconds"])
}

func TestRouteHandlerUnknownStation(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/route/StopArea:PE/StopArea:LY")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, model.Code)

	resp, _ = serveApiAndRetrieveEndpoint(t, api, "/api/route/bad$id/StopArea:PE")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
