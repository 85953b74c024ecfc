package restapi

import (
	"errors"
	"net/http"
	"time"

	"railroute.dev/internal/gtfs"
	"railroute.dev/internal/models"
	"railroute.dev/internal/resolver"
	"railroute.dev/internal/utils"
)

// passthroughSignals are the extraction outcomes a caller may forward as ?signal=.
var passthroughSignals = map[string]resolver.Reason{
	string(resolver.ReasonInvalidRequest):     resolver.ReasonInvalidRequest,
	string(resolver.ReasonOriginMissing):      resolver.ReasonOriginMissing,
	string(resolver.ReasonDestinationMissing): resolver.ReasonDestinationMissing,
}

func (api *RestAPI) tripHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	clean, fieldErrors := utils.ValidateStationQueries(map[string]string{
		"from": query.Get("from"),
		"to":   query.Get("to"),
	})
	var signal resolver.Reason
	if raw := query.Get("signal"); raw != "" {
		reason, ok := passthroughSignals[raw]
		if !ok {
			fieldErrors["signal"] = append(fieldErrors["signal"], "unknown signal")
		}
		signal = reason
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	snapshot := api.GtfsManager.Snapshot()
	extraction := resolver.Extraction{
		Query:  resolver.Query{Origin: clean["from"], Destination: clean["to"]},
		Signal: signal,
	}

	key := tripCacheKey(extraction.Origin, extraction.Destination)
	if signal == "" {
		if hit, ok := api.tripCache.get(snapshot, key); ok {
			if api.Metrics != nil {
				api.Metrics.CacheHits.Inc()
			}
			api.sendResponse(w, r, models.NewEntryResponse(hit.entry, hit.references))
			return
		}
		if api.Metrics != nil && api.tripCache != nil {
			api.Metrics.CacheMisses.Inc()
		}
	}

	start := time.Now()
	trip, err := snapshot.Resolver.ResolveExtraction(r.Context(), extraction)
	elapsed := time.Since(start)

	if err != nil {
		var failure *resolver.Failure
		if errors.As(err, &failure) {
			api.observeResolution(string(failure.Reason), elapsed, 0)
			api.failureResponse(w, r, failure)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}
	api.observeResolution("ok", elapsed, trip.RouterCalls)

	entry, references := newTripEntry(snapshot, trip)
	api.tripCache.put(key, cachedTrip{snapshot: snapshot, entry: entry, references: references})
	api.sendResponse(w, r, models.NewEntryResponse(entry, references))
}

func (api *RestAPI) observeResolution(outcome string, elapsed time.Duration, routerCalls int) {
	if api.Metrics != nil {
		api.Metrics.ObserveResolution(outcome, elapsed, routerCalls)
	}
}

func newTripEntry(snapshot *gtfs.Snapshot, trip *resolver.Trip) (models.TripEntry, models.ReferencesModel) {
	entry := models.TripEntry{
		Origin:                stationMatch(trip.Origin),
		Destination:           stationMatch(trip.Destination),
		Path:                  trip.Path,
		DurationSeconds:       trip.Seconds,
		DurationText:          resolver.DurationText(float64(trip.Seconds)),
		OriginCandidates:      stationMatches(trip.OriginCandidates),
		DestinationCandidates: stationMatches(trip.DestinationCandidates),
	}
	return entry, pathReferences(snapshot, trip.Path)
}

func stationMatch(c resolver.Candidate) models.StationMatch {
	return models.StationMatch{ID: c.ID, Name: c.Name, Score: c.Score}
}

func stationMatches(candidates []resolver.Candidate) []models.StationMatch {
	out := make([]models.StationMatch, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, stationMatch(c))
	}
	return out
}

// pathReferences resolves the stations of a path so a client can draw it.
func pathReferences(snapshot *gtfs.Snapshot, path []string) models.ReferencesModel {
	references := models.NewEmptyReferences()
	for _, s := range resolver.PathStations(snapshot.Index, path) {
		references.AddStation(models.NewStation(s.ID, s.Name, s.Lat, s.Lon))
	}
	return references
}
