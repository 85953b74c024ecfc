package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationsHandlerRanksCandidates(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/stations.json?q=metz")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := model.Data.(map[string]interface{})
	list := data["list"].([]interface{})
	require.Len(t, list, 2)

	first := list[0].(map[string]interface{})
	second := list[1].(map[string]interface{})
	assert.Equal(t, "StopArea:MV", first["id"])
	assert.Equal(t, "StopArea:MZ", second["id"])
	assert.Greater(t, first["score"].(float64), second["score"].(float64))
	assert.Equal(t, false, data["limitExceeded"])
	assert.Len(t, referencedStations(t, model), 2)
}

func TestStationsHandlerLimit(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/stations.json?q=ville&limit=1")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := model.Data.(map[string]interface{})
	assert.Len(t, data["list"], 1)
	assert.Equal(t, true, data["limitExceeded"])
}

func TestStationsHandlerUnknownIsEmpty(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/stations.json?q=lyon")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := model.Data.(map[string]interface{})
	assert.Empty(t, data["list"])
	assert.Equal(t, false, data["limitExceeded"])
}

func TestStationsHandlerValidation(t *testing.T) {
	api := createTestApi(t)

	for _, endpoint := range []string{
		"/api/stations.json",
		"/api/stations.json?q=metz&limit=0",
		"/api/stations.json?q=metz&limit=abc",
		"/api/stations.json?q=metz&limit=1000",
	} {
		resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, endpoint)
		assert.Equal(t, http.StatusBadRequest, model.Code, endpoint)
	}
}
