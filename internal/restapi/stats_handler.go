package restapi

import (
	"net/http"

	"railroute.dev/internal/models"
)

func (api *RestAPI) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats := api.GtfsManager.Statistics()
	api.sendResponse(w, r, models.NewEntryResponse(stats, models.NewEmptyReferences()))
}
