package graph

import (
	"log/slog"
	"sort"

	"railroute.dev/internal/logging"
	"railroute.dev/internal/timetable"
)

// BuildStats counts what the builder kept and excluded. Exclusions are data-quality
// signals, never errors.
type BuildStats struct {
	Records        int `json:"records"`
	Trips          int `json:"trips"`
	MalformedTimes int `json:"malformedTimes"`
	MissingStation int `json:"missingStation"`
	ShortTrips     int `json:"shortTrips"`
	InvalidEdges   int `json:"invalidEdges"`
	TripEdges      int `json:"tripEdges"`
	CompactEdges   int `json:"compactEdges"`
}

type pair struct {
	origin, destination string
}

// Build compiles stop-time records into a Graph. It never fails: malformed times, rows
// without a station and trips without a positive duration are excluded and counted.
func Build(records []timetable.StopTimeRecord, logger *slog.Logger) (*Graph, BuildStats) {
	stats := BuildStats{Records: len(records)}

	tripEdges := TripEdges(records, &stats)
	stats.TripEdges = len(tripEdges)

	compact := Compact(tripEdges)
	stats.CompactEdges = len(compact)

	g := NewGraph(compact)

	logging.LogOperation(logger, "schedule_graph_built",
		slog.String("component", "schedule_graph"),
		slog.Int("records", stats.Records),
		slog.Int("trips", stats.Trips),
		slog.Int("malformed_times", stats.MalformedTimes),
		slog.Int("missing_station", stats.MissingStation),
		slog.Int("short_trips", stats.ShortTrips),
		slog.Int("invalid_edges", stats.InvalidEdges),
		slog.Int("trip_edges", stats.TripEdges),
		slog.Int("compact_edges", stats.CompactEdges),
		slog.Int("stations", g.StationCount()))

	return g, stats
}

// TripEdges derives one edge per trip, from its first to its last stop bearing a station.
// stats may be nil.
func TripEdges(records []timetable.StopTimeRecord, stats *BuildStats) []TripEdge {
	if stats == nil {
		stats = &BuildStats{}
	}

	order := make([]string, 0)
	byTrip := make(map[string][]timetable.StopTimeRecord)
	for _, r := range records {
		if _, ok := byTrip[r.TripID]; !ok {
			order = append(order, r.TripID)
		}
		byTrip[r.TripID] = append(byTrip[r.TripID], r)
	}
	stats.Trips = len(order)

	edges := make([]TripEdge, 0, len(order))
	for _, tripID := range order {
		stops := byTrip[tripID]
		sort.SliceStable(stops, func(i, j int) bool {
			return stops[i].Sequence < stops[j].Sequence
		})

		departures := make([]string, len(stops))
		arrivals := make([]string, len(stops))
		for i, st := range stops {
			departures[i] = st.Departure
			arrivals[i] = st.Arrival
		}
		dep := timetable.NormalizeTimes(departures)
		arr := timetable.NormalizeTimes(arrivals)

		first, last := -1, -1
		withStation := 0
		for i, st := range stops {
			if !dep[i].Valid || !arr[i].Valid {
				stats.MalformedTimes++
			}
			if st.StationID == "" {
				stats.MissingStation++
				continue
			}
			withStation++
			if first < 0 {
				first = i
			}
			last = i
		}

		if withStation < 2 {
			stats.ShortTrips++
			continue
		}
		if !dep[first].Valid || !arr[last].Valid {
			stats.InvalidEdges++
			continue
		}

		duration := arr[last].Seconds - dep[first].Seconds
		if duration <= 0 {
			stats.InvalidEdges++
			continue
		}

		edges = append(edges, TripEdge{
			TripID:      tripID,
			Origin:      stops[first].StationID,
			Destination: stops[last].StationID,
			Departure:   dep[first].Seconds,
			Arrival:     arr[last].Seconds,
			Duration:    duration,
		})
	}

	return edges
}

// Compact keeps the minimum-duration edge per ordered station pair. On equal durations
// the first trip seen is kept. Output is sorted by origin then destination.
func Compact(edges []TripEdge) []CompactEdge {
	best := make(map[pair]int)
	compact := make([]CompactEdge, 0)
	for _, e := range edges {
		if e.Duration <= 0 {
			continue
		}
		key := pair{e.Origin, e.Destination}
		if i, ok := best[key]; ok {
			if e.Duration < compact[i].Weight {
				compact[i].Weight = e.Duration
				compact[i].TripID = e.TripID
			}
			continue
		}
		best[key] = len(compact)
		compact = append(compact, CompactEdge{
			Origin:      e.Origin,
			Destination: e.Destination,
			Weight:      e.Duration,
			TripID:      e.TripID,
		})
	}

	sort.SliceStable(compact, func(i, j int) bool {
		if compact[i].Origin != compact[j].Origin {
			return compact[i].Origin < compact[j].Origin
		}
		return compact[i].Destination < compact[j].Destination
	})
	return compact
}
