package routing

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railroute.dev/internal/graph"
)

func chain() *graph.Graph {
	return graph.NewGraph([]graph.CompactEdge{
		{Origin: "A", Destination: "B", Weight: 600},
		{Origin: "B", Destination: "C", Weight: 900},
	})
}

func TestRouteToSelf(t *testing.T) {
	r := NewRouter(chain())

	res := r.Route("A", "A")
	assert.Equal(t, []string{"A"}, res.Path)
	assert.Equal(t, 0.0, res.Seconds)
	assert.True(t, res.Found())

	res = r.Route("nowhere", "nowhere")
	assert.Equal(t, []string{"nowhere"}, res.Path)
}

func TestRouteUnreachable(t *testing.T) {
	r := NewRouter(chain())

	res := r.Route("C", "A")
	assert.Nil(t, res.Path)
	assert.True(t, math.IsInf(res.Seconds, 1))
	assert.False(t, res.Found())

	res = r.Route("A", "unknown")
	assert.False(t, res.Found())
}

func TestRouteChain(t *testing.T) {
	r := NewRouter(chain())

	res := r.Route("A", "C")
	require.True(t, res.Found())
	assert.Equal(t, []string{"A", "B", "C"}, res.Path)
	assert.Equal(t, 1500.0, res.Seconds)
}

func TestRoutePrefersFasterDetour(t *testing.T) {
	g := graph.NewGraph([]graph.CompactEdge{
		{Origin: "A", Destination: "D", Weight: 5000},
		{Origin: "A", Destination: "B", Weight: 1000},
		{Origin: "B", Destination: "C", Weight: 1000},
		{Origin: "C", Destination: "D", Weight: 1000},
	})

	res := NewRouter(g).Route("A", "D")
	assert.Equal(t, []string{"A", "B", "C", "D"}, res.Path)
	assert.Equal(t, 3000.0, res.Seconds)
}

func TestRouteEqualCostsAreDeterministic(t *testing.T) {
	g := graph.NewGraph([]graph.CompactEdge{
		{Origin: "A", Destination: "B", Weight: 100},
		{Origin: "A", Destination: "C", Weight: 100},
		{Origin: "B", Destination: "D", Weight: 100},
		{Origin: "C", Destination: "D", Weight: 100},
	})
	r := NewRouter(g)

	first := r.Route("A", "D")
	require.True(t, first.Found())
	assert.Equal(t, 200.0, first.Seconds)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, r.Route("A", "D"))
	}
	assert.Equal(t, []string{"A", "B", "D"}, first.Path)
}

func TestRouteWithCycles(t *testing.T) {
	g := graph.NewGraph([]graph.CompactEdge{
		{Origin: "A", Destination: "B", Weight: 10},
		{Origin: "B", Destination: "A", Weight: 10},
		{Origin: "B", Destination: "B", Weight: 5},
		{Origin: "B", Destination: "C", Weight: 10},
	})

	res := NewRouter(g).Route("A", "C")
	assert.Equal(t, []string{"A", "B", "C"}, res.Path)
	assert.Equal(t, 20.0, res.Seconds)
}

func TestRouterConcurrentUse(t *testing.T) {
	r := NewRouter(chain())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := r.Route("A", "C")
			assert.Equal(t, 1500.0, res.Seconds)
		}()
	}
	wg.Wait()
}
