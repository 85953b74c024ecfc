package timetable

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/jamespfennell/gtfs"
)

const stopTimesFile = "stop_times.txt"

// readStopTimes reads stop_times.txt from a GTFS zip, keeping the time strings as they
// appear. Stops are resolved to their root station through the parsed stop table; an
// unknown stop yields an empty StationID. Rows without a trip or a numeric
// stop_sequence cannot be ordered and are left out.
func readStopTimes(b []byte, stops []gtfs.Stop) ([]StopTimeRecord, error) {
	archive, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, err
	}

	var file *zip.File
	for _, f := range archive.File {
		if path.Base(f.Name) == stopTimesFile {
			file = f
			break
		}
	}
	if file == nil {
		return nil, nil
	}

	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close() // nolint

	byID := make(map[string]*gtfs.Stop, len(stops))
	for i := range stops {
		byID[stops[i].Id] = &stops[i]
	}

	reader := csv.NewReader(rc)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s header: %w", stopTimesFile, err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, required := range []string{"trip_id", "stop_id", "stop_sequence"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%s is missing column %s", stopTimesFile, required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []StopTimeRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", stopTimesFile, err)
		}

		tripID := field(row, "trip_id")
		sequence, err := strconv.Atoi(field(row, "stop_sequence"))
		if tripID == "" || err != nil {
			continue
		}

		records = append(records, StopTimeRecord{
			TripID:    tripID,
			StationID: stationID(byID[field(row, "stop_id")]),
			Sequence:  sequence,
			Arrival:   field(row, "arrival_time"),
			Departure: field(row, "departure_time"),
		})
	}

	return records, nil
}
