package restapi

import (
	"net/http"

	"railroute.dev/internal/models"
	"railroute.dev/internal/resolver"
	"railroute.dev/internal/utils"
)

// routeHandler runs the router directly between two station IDs. An unreachable pair
// is a normal answer with found=false.
func (api *RestAPI) routeHandler(w http.ResponseWriter, r *http.Request) {
	from := utils.ExtractIDFromParams(r, "from")
	to := utils.ExtractIDFromParams(r, "to")

	fieldErrors := make(map[string][]string)
	if err := utils.ValidateID(from); err != nil {
		fieldErrors["from"] = append(fieldErrors["from"], err.Error())
	}
	if err := utils.ValidateID(to); err != nil {
		fieldErrors["to"] = append(fieldErrors["to"], err.Error())
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	snapshot := api.GtfsManager.Snapshot()
	_, fromKnown := snapshot.Index.StationByID(from)
	_, toKnown := snapshot.Index.StationByID(to)
	if !fromKnown || !toKnown {
		api.sendNotFound(w, r)
		return
	}

	result := snapshot.Router.Route(from, to)
	if api.Metrics != nil {
		api.Metrics.RouterCalls.Inc()
	}

	entry := models.RouteEntry{
		From:  from,
		To:    to,
		Found: result.Found(),
		Path:  []string{},
	}
	references := models.NewEmptyReferences()
	if result.Found() {
		entry.Path = result.Path
		entry.DurationSeconds = int(result.Seconds)
		entry.DurationText = resolver.DurationText(result.Seconds)
		references = pathReferences(snapshot, result.Path)
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry, references))
}
