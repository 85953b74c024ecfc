package models

// Station is a station as exposed by the API. Names lists every display name
// grouped under the ID.
type Station struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Lat   float64  `json:"lat"`
	Lon   float64  `json:"lon"`
	Names []string `json:"names,omitempty"`
}

func NewStation(id, name string, lat, lon float64) Station {
	return Station{
		ID:   id,
		Name: name,
		Lat:  lat,
		Lon:  lon,
	}
}

// StationMatch is a ranked candidate for a raw station string.
type StationMatch struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}
