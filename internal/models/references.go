package models

// ReferencesModel References model for related data
type ReferencesModel struct {
	Stations []Station `json:"stations"`
}

// NewEmptyReferences creates a new empty References model with initialized empty slices
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Stations: []Station{},
	}
}

// AddStation appends s unless a station with the same ID is already referenced.
func (r *ReferencesModel) AddStation(s Station) {
	for _, existing := range r.Stations {
		if existing.ID == s.ID {
			return
		}
	}
	r.Stations = append(r.Stations, s)
}
