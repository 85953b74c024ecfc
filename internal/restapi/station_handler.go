package restapi

import (
	"net/http"

	"railroute.dev/internal/models"
	"railroute.dev/internal/utils"
)

func (api *RestAPI) stationHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")

	if err := utils.ValidateID(id); err != nil {
		fieldErrors := map[string][]string{
			"id": {err.Error()},
		}
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	rows := api.GtfsManager.Snapshot().Index.RowsForID(id)
	if len(rows) == 0 {
		api.sendNotFound(w, r)
		return
	}

	station := models.NewStation(id, rows[0].Name, rows[0].Lat, rows[0].Lon)
	seen := make(map[string]struct{})
	for _, row := range rows {
		if _, ok := seen[row.Name]; ok {
			continue
		}
		seen[row.Name] = struct{}{}
		station.Names = append(station.Names, row.Name)
	}

	api.sendResponse(w, r, models.NewEntryResponse(station, models.NewEmptyReferences()))
}
