// Package timetable holds the raw stop-time and station rows the routing engine is built
// from, and adapts parsed GTFS feeds into them.
package timetable

import (
	"strconv"
	"strings"
)

// SecondsPerDay is the offset added when a trip's times wrap past midnight.
const SecondsPerDay = 24 * 3600

// StopTimeRecord is one row of the raw timetable. StationID is the parent station when
// the stop has one, otherwise the stop itself. Arrival and Departure are "HH:MM:SS"
// strings and may be empty or malformed.
type StopTimeRecord struct {
	TripID    string
	StationID string
	Sequence  int
	Arrival   string
	Departure string
}

// ParseClock converts "HH:MM:SS" into seconds. Hours may exceed 23, as GTFS allows for
// trips running past midnight. A missing or malformed value reports false.
func ParseClock(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, false
	}

	var fields [3]int
	for i, p := range parts {
		if p == "" {
			return 0, false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		fields[i] = n
	}

	hours, minutes, seconds := fields[0], fields[1], fields[2]
	if minutes > 59 || seconds > 59 {
		return 0, false
	}
	return hours*3600 + minutes*60 + seconds, true
}

// FormatClock renders seconds as "HH:MM:SS"; hours are not wrapped at 24.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return pad2(h) + ":" + pad2(m) + ":" + pad2(s)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// Clock is a normalized time of a stop within its trip.
type Clock struct {
	Seconds int
	Valid   bool
}

// NormalizeTimes resolves midnight crossings in the times of one trip, given in stop
// sequence order. Whenever a value would fall below the previous normalized value a day
// is added to the running offset, which never decreases. Invalid values are kept invalid
// and do not affect the offset.
func NormalizeTimes(values []string) []Clock {
	out := make([]Clock, len(values))

	offset := 0
	last, haveLast := 0, false
	for i, v := range values {
		t, ok := ParseClock(v)
		if !ok {
			continue
		}
		if haveLast && t+offset < last {
			offset += SecondsPerDay
		}
		normalized := t + offset
		out[i] = Clock{Seconds: normalized, Valid: true}
		last, haveLast = normalized, true
	}

	return out
}
