package stations

import (
	"strings"
)

// Row is one line of the station table. Several rows may share an ID when
// platforms or aliases are grouped under the same parent station.
type Row struct {
	Name string
	Lon  float64
	Lat  float64
	ID   string
}

// Station is a station row with its comparison key.
type Station struct {
	Name string  `json:"name"`
	Key  string  `json:"key"`
	ID   string  `json:"id"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Lookup is the result of a substring candidate search. Both slices are empty when
// nothing matched.
type Lookup struct {
	IDs   []string
	Names []string
}

// Empty reports whether the lookup found no candidate.
func (l Lookup) Empty() bool {
	return len(l.IDs) == 0 && len(l.Names) == 0
}

// Index is the read-only station reference built once from the station table.
type Index struct {
	rows      []Station
	stations  []Station
	canonical map[string]string
	keys      []string
	byID      map[string]int
	skipped   int
}

// NewIndex builds the station reference. Rows without a name or an ID are skipped.
// When two distinct names normalize identically the first one seen becomes canonical.
func NewIndex(rows []Row) *Index {
	idx := &Index{
		rows:      make([]Station, 0, len(rows)),
		canonical: make(map[string]string),
		byID:      make(map[string]int),
	}

	seenNames := make(map[string]struct{})
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		id := strings.TrimSpace(row.ID)
		if name == "" || id == "" {
			idx.skipped++
			continue
		}

		s := Station{Name: name, Key: Normalize(name), ID: id, Lat: row.Lat, Lon: row.Lon}
		idx.rows = append(idx.rows, s)

		if _, ok := idx.byID[id]; !ok {
			idx.byID[id] = len(idx.rows) - 1
		}
		if _, ok := seenNames[name]; !ok {
			seenNames[name] = struct{}{}
			idx.stations = append(idx.stations, s)
		}
		if s.Key == "" {
			continue
		}
		if _, ok := idx.canonical[s.Key]; !ok {
			idx.canonical[s.Key] = name
			idx.keys = append(idx.keys, s.Key)
		}
	}

	return idx
}

// Stations returns one station per distinct display name, in table order.
func (idx *Index) Stations() []Station {
	return idx.stations
}

// Names returns the canonical station names, one per normalized key.
func (idx *Index) Names() []string {
	names := make([]string, 0, len(idx.keys))
	for _, key := range idx.keys {
		names = append(names, idx.canonical[key])
	}
	return names
}

// Keys returns the normalized keys in first-seen order.
func (idx *Index) Keys() []string {
	return idx.keys
}

// Canonical returns the canonical display name for a normalized key.
func (idx *Index) Canonical(key string) (string, bool) {
	name, ok := idx.canonical[key]
	return name, ok
}

// RowCount is the number of rows kept from the station table.
func (idx *Index) RowCount() int {
	return len(idx.rows)
}

// Skipped is the number of station rows dropped for a missing name or ID.
func (idx *Index) Skipped() int {
	return idx.skipped
}

// StationByID returns the first station row carrying the given ID.
func (idx *Index) StationByID(id string) (Station, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return Station{}, false
	}
	return idx.rows[i], true
}

// RowsForID returns every station row grouped under the given ID.
func (idx *Index) RowsForID(id string) []Station {
	var out []Station
	for _, s := range idx.rows {
		if s.ID == id {
			out = append(out, s)
		}
	}
	return out
}

// Candidates returns every station whose normalized name contains the normalized query.
// IDs and names are each deduplicated and keep table order.
func (idx *Index) Candidates(query string) Lookup {
	q := Normalize(query)
	lookup := Lookup{IDs: []string{}, Names: []string{}}
	if q == "" {
		return lookup
	}

	seenIDs := make(map[string]struct{})
	seenNames := make(map[string]struct{})
	for _, s := range idx.rows {
		if !strings.Contains(s.Key, q) {
			continue
		}
		if _, ok := seenIDs[s.ID]; !ok {
			seenIDs[s.ID] = struct{}{}
			lookup.IDs = append(lookup.IDs, s.ID)
		}
		if _, ok := seenNames[s.Name]; !ok {
			seenNames[s.Name] = struct{}{}
			lookup.Names = append(lookup.Names, s.Name)
		}
	}

	return lookup
}

// IDForName returns the ID of the first station row whose name contains name,
// ignoring case and accents.
func (idx *Index) IDForName(name string) (string, bool) {
	q := Normalize(name)
	if q == "" {
		return "", false
	}
	for _, s := range idx.rows {
		if strings.Contains(s.Key, q) {
			return s.ID, true
		}
	}
	return "", false
}
