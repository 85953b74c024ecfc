// Package graph compiles a raw timetable into a directed graph of station pairs.
// Each ordered pair keeps only the fastest scheduled trip between them.
package graph

import "sort"

// TripEdge is the origin-to-destination connection made by one scheduled trip.
type TripEdge struct {
	TripID      string
	Origin      string
	Destination string
	Departure   int
	Arrival     int
	Duration    int
}

// CompactEdge is the fastest TripEdge for an ordered station pair. Weight is in seconds
// and always positive.
type CompactEdge struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Weight      int    `json:"weight"`
	TripID      string `json:"tripId,omitempty"`
}

// Neighbor is an outgoing adjacency entry.
type Neighbor struct {
	StationID string
	Weight    int
}

// Graph is an immutable adjacency mapping. It is safe for concurrent reads.
type Graph struct {
	adjacency map[string][]Neighbor
	edges     []CompactEdge
	stations  int
}

// NewGraph builds the adjacency from compact edges. Adjacency lists follow the order of
// edges, sorted by origin then destination. Edges with a non-positive weight are ignored.
func NewGraph(edges []CompactEdge) *Graph {
	kept := make([]CompactEdge, 0, len(edges))
	for _, e := range edges {
		if e.Weight > 0 && e.Origin != "" && e.Destination != "" {
			kept = append(kept, e)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Origin != kept[j].Origin {
			return kept[i].Origin < kept[j].Origin
		}
		return kept[i].Destination < kept[j].Destination
	})

	g := &Graph{
		adjacency: make(map[string][]Neighbor),
		edges:     kept,
	}
	seen := make(map[string]struct{})
	for _, e := range kept {
		g.adjacency[e.Origin] = append(g.adjacency[e.Origin], Neighbor{StationID: e.Destination, Weight: e.Weight})
		seen[e.Origin] = struct{}{}
		seen[e.Destination] = struct{}{}
	}
	g.stations = len(seen)
	return g
}

// Neighbors returns the outgoing edges of a station. The slice must not be modified.
func (g *Graph) Neighbors(stationID string) []Neighbor {
	return g.adjacency[stationID]
}

// Edges returns every compact edge, sorted by origin then destination.
func (g *Graph) Edges() []CompactEdge {
	return g.edges
}

// Edge returns the compact edge for an ordered pair, if any.
func (g *Graph) Edge(origin, destination string) (CompactEdge, bool) {
	i := sort.Search(len(g.edges), func(i int) bool {
		e := g.edges[i]
		return e.Origin > origin || (e.Origin == origin && e.Destination >= destination)
	})
	if i < len(g.edges) && g.edges[i].Origin == origin && g.edges[i].Destination == destination {
		return g.edges[i], true
	}
	return CompactEdge{}, false
}

// EdgeCount is the number of compact edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// StationCount is the number of distinct stations appearing on an edge.
func (g *Graph) StationCount() int {
	return g.stations
}
