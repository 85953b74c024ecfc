package models

// TripEntry is a resolved trip between two raw station strings.
type TripEntry struct {
	Origin                StationMatch   `json:"origin"`
	Destination           StationMatch   `json:"destination"`
	Path                  []string       `json:"path"`
	DurationSeconds       int            `json:"durationSeconds"`
	DurationText          string         `json:"durationText"`
	OriginCandidates      []StationMatch `json:"originCandidates"`
	DestinationCandidates []StationMatch `json:"destinationCandidates"`
}

// RouteEntry is a shortest path between two station IDs.
type RouteEntry struct {
	From            string   `json:"from"`
	To              string   `json:"to"`
	Found           bool     `json:"found"`
	Path            []string `json:"path"`
	DurationSeconds int      `json:"durationSeconds"`
	DurationText    string   `json:"durationText,omitempty"`
}

// FailureEntry explains why a trip could not be resolved.
type FailureEntry struct {
	Reason string `json:"reason"`
	Side   string `json:"side,omitempty"`
}
