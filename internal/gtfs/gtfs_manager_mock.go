package gtfs

import (
	"railroute.dev/internal/matcher"
	"railroute.dev/internal/resolver"
	"railroute.dev/internal/stations"
	"railroute.dev/internal/timetable"
)

// MockSnapshot builds a Snapshot from in-memory rows with the default tuning.
func MockSnapshot(source string, rows []stations.Row, records []timetable.StopTimeRecord) *Snapshot {
	feed := &timetable.Feed{Source: source, Stations: rows, StopTimes: records}
	return BuildSnapshot(feed, matcher.DefaultWeights(), resolver.DefaultOptions(), nil)
}

// MockStopTimes expands a trip given as alternating station IDs and clock strings
// into stop-time records with the same arrival and departure at each stop.
func MockStopTimes(tripID string, stops ...string) []timetable.StopTimeRecord {
	var records []timetable.StopTimeRecord
	for i := 0; i+1 < len(stops); i += 2 {
		records = append(records, timetable.StopTimeRecord{
			TripID:    tripID,
			StationID: stops[i],
			Sequence:  i / 2,
			Arrival:   stops[i+1],
			Departure: stops[i+1],
		})
	}
	return records
}
