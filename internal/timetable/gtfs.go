package timetable

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/jamespfennell/gtfs"

	"railroute.dev/internal/stations"
)

// Feed is a timetable and station table loaded from one source.
type Feed struct {
	Source    string
	StopTimes []StopTimeRecord
	Stations  []stations.Row
}

// IsRemote reports whether source is fetched over HTTP rather than read from disk.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads a GTFS zip from a local path or an http(s) URL and adapts it into a Feed.
func Load(ctx context.Context, source string) (*Feed, error) {
	b, err := rawGtfsData(ctx, source)
	if err != nil {
		return nil, err
	}
	return Parse(source, b)
}

// Parse adapts the bytes of a GTFS zip into a Feed. Stop times are read from the raw
// stop_times.txt so blank arrival and departure values stay blank.
func Parse(source string, b []byte) (*Feed, error) {
	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}

	feed := FromStatic(staticData)
	feed.Source = source

	records, err := readStopTimes(b, staticData.Stops)
	if err != nil {
		return nil, fmt.Errorf("error reading stop times: %w", err)
	}
	feed.StopTimes = records
	return feed, nil
}

func rawGtfsData(ctx context.Context, source string) ([]byte, error) {
	if !IsRemote(source) {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating GTFS request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer resp.Body.Close() // nolint

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading GTFS data: unexpected status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}
	return b, nil
}

// FromStatic adapts a parsed GTFS feed. Stop times are grouped under the root parent
// station of their stop; the station table keeps one row per stop, named after the stop
// and keyed by that same root station.
//
// The parser drops stop times with neither time and zeroes both times when only one is
// blank. A zero pair past the first stop of a trip is therefore reported as missing.
func FromStatic(static *gtfs.Static) *Feed {
	feed := &Feed{}

	for i := range static.Stops {
		stop := &static.Stops[i]
		row := stations.Row{Name: stop.Name, ID: stationID(stop)}
		if stop.Longitude != nil {
			row.Lon = *stop.Longitude
		}
		if stop.Latitude != nil {
			row.Lat = *stop.Latitude
		}
		feed.Stations = append(feed.Stations, row)
	}

	for i := range static.Trips {
		trip := &static.Trips[i]
		for j, st := range trip.StopTimes {
			record := StopTimeRecord{
				TripID:    trip.ID,
				StationID: stationID(st.Stop),
				Sequence:  st.StopSequence,
			}
			if j == 0 || st.ArrivalTime != 0 || st.DepartureTime != 0 {
				record.Arrival = FormatClock(int(st.ArrivalTime.Seconds()))
				record.Departure = FormatClock(int(st.DepartureTime.Seconds()))
			}
			feed.StopTimes = append(feed.StopTimes, record)
		}
	}

	return feed
}

func stationID(stop *gtfs.Stop) string {
	if stop == nil {
		return ""
	}
	for stop.Parent != nil {
		stop = stop.Parent
	}
	return stop.Id
}
