package restapi

import (
	"net/http"
	"strconv"

	"railroute.dev/internal/models"
	"railroute.dev/internal/resolver"
	"railroute.dev/internal/utils"
)

const (
	defaultStationsLimit = 20
	maxStationsLimit     = 250
)

// stationsHandler lists the ranked candidates for a raw station string.
func (api *RestAPI) stationsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fieldErrors := make(map[string][]string)

	q, err := utils.ValidateAndSanitizeQuery(query.Get("q"))
	if err != nil {
		fieldErrors["q"] = append(fieldErrors["q"], err.Error())
	} else if q == "" {
		fieldErrors["q"] = append(fieldErrors["q"], "q is required")
	}

	limit := defaultStationsLimit
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxStationsLimit {
			fieldErrors["limit"] = append(fieldErrors["limit"], "limit must be between 1 and "+strconv.Itoa(maxStationsLimit))
		} else {
			limit = n
		}
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	snapshot := api.GtfsManager.Snapshot()
	candidates, err := snapshot.Resolver.Candidates(resolver.SideOrigin, q)
	if err != nil {
		// nothing recognized is an empty list here
		candidates = nil
	}

	limitExceeded := len(candidates) > limit
	if limitExceeded {
		candidates = candidates[:limit]
	}

	list := stationMatches(candidates)
	references := models.NewEmptyReferences()
	for _, c := range candidates {
		if s, ok := snapshot.Index.StationByID(c.ID); ok {
			references.AddStation(models.NewStation(s.ID, s.Name, s.Lat, s.Lon))
		}
	}

	api.sendResponse(w, r, models.NewListResponse(list, references, limitExceeded))
}
