package resolver

import (
	"fmt"
	"math"
	"strconv"

	"railroute.dev/internal/stations"
)

// DurationText renders a travel time for display: whole minutes under an hour,
// hours with two decimals beyond. Halves round to even.
func DurationText(seconds float64) string {
	if seconds < 3600 {
		return fmt.Sprintf("%d minutes", int(math.RoundToEven(seconds/60)))
	}
	hours := math.RoundToEven(seconds/36) / 100
	return strconv.FormatFloat(hours, 'f', -1, 64) + " hours"
}

// PathStations resolves each station ID of a path to its first station row so the
// route can be drawn. Unknown IDs keep only the ID.
func PathStations(index *stations.Index, path []string) []stations.Station {
	out := make([]stations.Station, 0, len(path))
	for _, id := range path {
		s, ok := index.StationByID(id)
		if !ok {
			s = stations.Station{ID: id}
		}
		out = append(out, s)
	}
	return out
}
