package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationHandler(t *testing.T) {
	api := createTestApi(t)

	for _, endpoint := range []string{"/api/station/StopArea:PE", "/api/station/StopArea:PE.json", "/api/station/StopArea%3APE"} {
		resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)

		require.Equal(t, http.StatusOK, resp.StatusCode, endpoint)
		entry := entryOf(t, model)
		assert.Equal(t, "StopArea:PE", entry["id"])
		assert.Equal(t, "Paris Est", entry["name"])
		assert.Equal(t, []interface{}{"Paris Est"}, entry["names"])
		assert.InDelta(t, 48.8768, entry["lat"], 1e-9)
	}
}

func TestStationHandlerNotFound(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/station/StopArea:LY")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, model.Code)
	assert.Equal(t, "resource not found", model.Text)
}

func TestStationHandlerInvalidID(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/station/bad$id")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid request parameters", model.Text)
}
