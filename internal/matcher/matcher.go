// Package matcher ranks raw, noisy station strings against candidate station names.
package matcher

import (
	"slices"
	"sort"
	"strings"

	"railroute.dev/internal/stations"
)

// Weights are the empirically chosen scoring adjustments. They are configuration,
// re-validate against the matching scenarios before changing them.
type Weights struct {
	WordBoundaryBonus float64  `yaml:"wordBoundaryBonus" validate:"gte=0,lte=1"`
	PrefixTrapPenalty float64  `yaml:"prefixTrapPenalty" validate:"gte=0,lte=1"`
	HubBonus          float64  `yaml:"hubBonus" validate:"gte=0,lte=1"`
	AddressPenalty    float64  `yaml:"addressPenalty" validate:"gte=0,lte=1"`
	HubTokens         []string `yaml:"hubTokens" validate:"dive,required"`
	AddressTokens     []string `yaml:"addressTokens" validate:"dive,required"`
}

// DefaultWeights returns the stock scoring weights.
func DefaultWeights() Weights {
	return Weights{
		WordBoundaryBonus: 0.20,
		PrefixTrapPenalty: 0.35,
		HubBonus:          0.05,
		AddressPenalty:    0.05,
		HubTokens:         []string{"gare", "centre", "ville"},
		AddressTokens:     []string{"rue", "route", "eglise", "église", "avenue", "bd", "boulevard"},
	}
}

// Ranked holds candidate names and their scores as parallel slices, best first.
// Nothing is filtered out.
type Ranked struct {
	Names  []string
	Scores []float64
}

// Len is the number of ranked candidates.
func (r Ranked) Len() int {
	return len(r.Names)
}

// Matcher scores query strings against candidate names. It is immutable and safe
// for concurrent use.
type Matcher struct {
	weights Weights
	hub     map[string]struct{}
	address map[string]struct{}
}

// New creates a Matcher. Token sets are normalized so "église" and "eglise" are the same token.
func New(weights Weights) *Matcher {
	return &Matcher{
		weights: weights,
		hub:     tokenSet(weights.HubTokens),
		address: tokenSet(weights.AddressTokens),
	}
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if key := stations.Normalize(t); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

// Weights returns the weights the matcher was built with.
func (m *Matcher) Weights() Weights {
	return m.weights
}

// Score computes the raw composite score of a query against one candidate name.
// The value is not clamped and may leave [0, 1].
func (m *Matcher) Score(query, candidate string) float64 {
	return m.score(stations.Normalize(query), stations.Normalize(candidate))
}

func (m *Matcher) score(q, c string) float64 {
	tokens := stations.Tokens(c)
	score := similarity(q, c)

	whole := q != "" && slices.Contains(tokens, q)
	if whole {
		score += m.weights.WordBoundaryBonus
	}

	// "metz" against "metzeral": a prefix of the first word that is not a word itself
	if q != "" && len(tokens) > 0 && strings.HasPrefix(tokens[0], q) && !whole {
		score -= m.weights.PrefixTrapPenalty
	}

	if m.containsAny(tokens, m.hub) {
		score += m.weights.HubBonus
	}
	if m.containsAny(tokens, m.address) {
		score -= m.weights.AddressPenalty
	}

	return score
}

func (m *Matcher) containsAny(tokens []string, set map[string]struct{}) bool {
	for _, t := range tokens {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// Rank scores every candidate against the query and orders them best first, keeping
// the input order among equal scores. An exact normalized match short-circuits to that
// single candidate with score 1. Reported scores are clamped to [0, 1]; ordering uses the
// unclamped composite.
func (m *Matcher) Rank(query string, candidates []string) Ranked {
	q := stations.Normalize(query)

	for _, c := range candidates {
		if stations.Normalize(c) == q {
			return Ranked{Names: []string{c}, Scores: []float64{1}}
		}
	}

	type scored struct {
		name  string
		score float64
	}
	all := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		all = append(all, scored{name: c, score: m.score(q, stations.Normalize(c))})
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].score > all[j].score
	})

	ranked := Ranked{
		Names:  make([]string, 0, len(all)),
		Scores: make([]float64, 0, len(all)),
	}
	for _, s := range all {
		ranked.Names = append(ranked.Names, s.name)
		ranked.Scores = append(ranked.Scores, clamp(s.score))
	}
	return ranked
}

func clamp(score float64) float64 {
	return min(max(score, 0), 1)
}
