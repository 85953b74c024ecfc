// Package routing finds minimum-duration paths over a compiled schedule graph.
package routing

import (
	"container/heap"
	"math"

	"railroute.dev/internal/graph"
)

// Unreachable is the cost reported when no path exists.
var Unreachable = math.Inf(1)

// Result is the outcome of a route search. Path is nil and Seconds is +Inf when the goal
// cannot be reached.
type Result struct {
	Path    []string
	Seconds float64
}

// Found reports whether a path exists.
func (r Result) Found() bool {
	return r.Path != nil && !math.IsInf(r.Seconds, 1)
}

// Router runs single-source Dijkstra searches. It holds no per-search state and is safe
// for concurrent use.
type Router struct {
	graph *graph.Graph
}

// NewRouter creates a Router over g.
func NewRouter(g *graph.Graph) *Router {
	return &Router{graph: g}
}

// Graph returns the graph the router searches.
func (r *Router) Graph() *graph.Graph {
	return r.graph
}

// Route returns the minimum-duration path from origin to goal. The search stops as soon
// as the goal is settled; weights are positive so the first settlement is optimal.
func (r *Router) Route(origin, goal string) Result {
	if origin == goal {
		return Result{Path: []string{origin}, Seconds: 0}
	}

	dist := map[string]int{origin: 0}
	prev := make(map[string]string)

	pq := &queue{}
	seq := 0
	heap.Push(pq, &item{station: origin, dist: 0, seq: seq})

	found := false
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*item)
		if cur.station == goal {
			found = true
			break
		}
		if d, ok := dist[cur.station]; ok && cur.dist > d {
			// stale entry
			continue
		}

		for _, n := range r.graph.Neighbors(cur.station) {
			nd := cur.dist + n.Weight
			if d, ok := dist[n.StationID]; ok && nd >= d {
				continue
			}
			dist[n.StationID] = nd
			prev[n.StationID] = cur.station
			seq++
			heap.Push(pq, &item{station: n.StationID, dist: nd, seq: seq})
		}
	}

	if !found {
		return Result{Path: nil, Seconds: Unreachable}
	}

	path := []string{goal}
	for path[len(path)-1] != origin {
		path = append(path, prev[path[len(path)-1]])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return Result{Path: path, Seconds: float64(dist[goal])}
}

type item struct {
	station string
	dist    int
	seq     int
}

// queue orders by accumulated weight, then by insertion order.
type queue []*item

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].seq < q[j].seq
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(*item)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}
