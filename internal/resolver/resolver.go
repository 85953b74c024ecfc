// Package resolver turns a pair of raw station strings into the fastest trip between
// any of their candidate stations.
package resolver

import (
	"context"
	"log/slog"
	"math"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"railroute.dev/internal/matcher"
	"railroute.dev/internal/routing"
	"railroute.dev/internal/stations"
)

// Query is the pair of raw strings handed over by the extraction step.
type Query struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// Extraction is the extraction step's output. A non-empty Signal means extraction
// failed and is returned to the caller unchanged.
type Extraction struct {
	Query
	Signal Reason `json:"signal,omitempty"`
}

// Candidate is a ranked station match for one side of a trip.
type Candidate struct {
	Name  string  `json:"name"`
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Trip is a resolved trip. Seconds is the scheduled travel time along Path.
type Trip struct {
	Origin                Candidate   `json:"origin"`
	Destination           Candidate   `json:"destination"`
	Path                  []string    `json:"path"`
	Seconds               int         `json:"seconds"`
	OriginCandidates      []Candidate `json:"originCandidates"`
	DestinationCandidates []Candidate `json:"destinationCandidates"`
	RouterCalls           int         `json:"-"`
}

// Options tune how the cross product is evaluated.
type Options struct {
	// ParallelThreshold is the pair count above which routing fans out. Zero keeps
	// every request sequential.
	ParallelThreshold int `yaml:"parallelThreshold" validate:"gte=0"`
	// Parallelism bounds concurrent router calls. Zero means GOMAXPROCS.
	Parallelism int `yaml:"parallelism" validate:"gte=0,lte=1024"`
}

// DefaultOptions returns the stock options.
func DefaultOptions() Options {
	return Options{ParallelThreshold: 64}
}

// Resolver is immutable once built and safe for concurrent use.
type Resolver struct {
	index   *stations.Index
	matcher *matcher.Matcher
	router  *routing.Router
	opts    Options
	logger  *slog.Logger
}

// New creates a Resolver. A nil logger discards output.
func New(index *stations.Index, m *matcher.Matcher, router *routing.Router, opts Options, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		index:   index,
		matcher: m,
		router:  router,
		opts:    opts,
		logger:  logger,
	}
}

// ResolveExtraction passes an extraction signal through verbatim or resolves its query.
func (r *Resolver) ResolveExtraction(ctx context.Context, e Extraction) (*Trip, error) {
	if e.Signal != "" {
		return nil, NewFailure(e.Signal)
	}
	return r.Resolve(ctx, e.Query)
}

// Resolve finds the fastest trip between any origin candidate and any destination
// candidate. Failures are returned as *Failure.
func (r *Resolver) Resolve(ctx context.Context, q Query) (*Trip, error) {
	origin := strings.TrimSpace(q.Origin)
	destination := strings.TrimSpace(q.Destination)
	switch {
	case origin == "" && destination == "":
		return nil, NewFailure(ReasonInvalidRequest)
	case origin == "":
		return nil, NewFailure(ReasonOriginMissing)
	case destination == "":
		return nil, NewFailure(ReasonDestinationMissing)
	}

	origins, err := r.Candidates(SideOrigin, origin)
	if err != nil {
		return nil, err
	}
	destinations, err := r.Candidates(SideDestination, destination)
	if err != nil {
		return nil, err
	}

	results, err := r.crossProduct(ctx, origins, destinations)
	if err != nil {
		return nil, err
	}

	best := selectBest(results)
	if best < 0 {
		r.logger.Debug("no route between candidates",
			slog.String("origin", origin),
			slog.String("destination", destination),
			slog.Int("pairs", len(results)))
		return nil, NewFailure(ReasonNoRoute)
	}

	res := results[best]
	return &Trip{
		Origin:                res.origin,
		Destination:           res.destination,
		Path:                  res.route.Path,
		Seconds:               int(res.route.Seconds),
		OriginCandidates:      origins,
		DestinationCandidates: destinations,
		RouterCalls:           len(results),
	}, nil
}

// Candidates returns the ranked candidates for one side, best first, one per station ID.
func (r *Resolver) Candidates(side Side, raw string) ([]Candidate, error) {
	lookup := r.index.Candidates(raw)
	if lookup.Empty() {
		return nil, notRecognized(side)
	}

	ranked := r.matcher.Rank(raw, lookup.Names)
	out := make([]Candidate, 0, ranked.Len())
	seen := make(map[string]struct{}, ranked.Len())
	for i, name := range ranked.Names {
		id, ok := r.index.IDForName(name)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, Candidate{Name: name, ID: id, Score: ranked.Scores[i]})
	}

	if len(out) == 0 {
		return nil, notRecognized(side)
	}
	return out, nil
}

type pairResult struct {
	origin      Candidate
	destination Candidate
	route       routing.Result
}

func (r *Resolver) crossProduct(ctx context.Context, origins, destinations []Candidate) ([]pairResult, error) {
	results := make([]pairResult, 0, len(origins)*len(destinations))
	for _, o := range origins {
		for _, d := range destinations {
			results = append(results, pairResult{origin: o, destination: d})
		}
	}

	if r.opts.ParallelThreshold > 0 && len(results) > r.opts.ParallelThreshold {
		return results, r.routeParallel(ctx, results)
	}

	for i := range results {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results[i].route = r.router.Route(results[i].origin.ID, results[i].destination.ID)
	}
	return results, nil
}

func (r *Resolver) routeParallel(ctx context.Context, results []pairResult) error {
	limit := r.opts.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range results {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i].route = r.router.Route(results[i].origin.ID, results[i].destination.ID)
			return nil
		})
	}
	return g.Wait()
}

// selectBest returns the index of the fastest reachable pair, or -1. The earliest pair
// wins on equal durations.
func selectBest(results []pairResult) int {
	best := -1
	bestSeconds := math.Inf(1)
	for i, res := range results {
		if !res.route.Found() {
			continue
		}
		if res.route.Seconds < bestSeconds {
			best = i
			bestSeconds = res.route.Seconds
		}
	}
	return best
}
