package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankExactMatchShortCircuits(t *testing.T) {
	m := New(DefaultWeights())

	ranked := m.Rank("metz", []string{"Metzeral", "Metz", "Metz Ville"})

	assert.Equal(t, []string{"Metz"}, ranked.Names)
	assert.Equal(t, []float64{1.0}, ranked.Scores)
}

func TestRankExactMatchIgnoresAccentsAndCase(t *testing.T) {
	m := New(DefaultWeights())

	ranked := m.Rank("emile zola", []string{"Émile-Zola", "Émile Zola Centre"})

	assert.Equal(t, []string{"Émile-Zola"}, ranked.Names)
	assert.Equal(t, []float64{1.0}, ranked.Scores)
}

func TestPrefixTrap(t *testing.T) {
	m := New(DefaultWeights())

	metz := m.Score("metz", "Metz")
	metzeral := m.Score("metz", "Metzeral")
	assert.Greater(t, metz, metzeral)
	assert.InDelta(t, 0.55, metzeral, 1e-9)

	ranked := m.Rank("metz", []string{"Metzeral", "Metzervisse", "Metz Ville"})
	require.Equal(t, 3, ranked.Len())
	assert.Equal(t, "Metz Ville", ranked.Names[0])
	assert.Equal(t, 1.0, ranked.Scores[0], "clamped to 1")
	assert.InDelta(t, 0.55, ranked.Scores[1], 1e-9)
}

func TestWordBoundaryBonus(t *testing.T) {
	m := New(DefaultWeights())

	withToken := m.Score("est", "Paris Est")
	withoutToken := m.Score("est", "Paris Estacade")
	assert.Greater(t, withToken, withoutToken)
}

func TestTokenClassAdjustments(t *testing.T) {
	w := DefaultWeights()
	m := New(w)

	t.Run("hub token bonus", func(t *testing.T) {
		gare := m.Score("lyon", "Lyon Gare")
		plain := m.Score("lyon", "Lyon Gaze")
		assert.InDelta(t, w.HubBonus, gare-plain, 1e-9)
	})

	t.Run("address token penalty with accents", func(t *testing.T) {
		eglise := m.Score("lyon", "Lyon Église")
		plain := m.Score("lyon", "Lyon Ézlise")
		assert.InDelta(t, -w.AddressPenalty, eglise-plain, 1e-9)
	})
}

func TestRankKeepsEveryCandidate(t *testing.T) {
	m := New(DefaultWeights())

	candidates := []string{"Lyon Rue Neuve", "Lyon Gare", "Lyon Perrache", "Saint-Lyon"}
	ranked := m.Rank("lyon", candidates)

	require.Equal(t, len(candidates), ranked.Len())
	assert.ElementsMatch(t, candidates, ranked.Names)
	assert.Equal(t, "Lyon Gare", ranked.Names[0])
	for i := 1; i < len(ranked.Scores); i++ {
		assert.GreaterOrEqual(t, ranked.Scores[i-1], ranked.Scores[i])
	}
	for _, s := range ranked.Scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestRankEmptyCandidates(t *testing.T) {
	m := New(DefaultWeights())

	ranked := m.Rank("metz", nil)
	assert.Equal(t, 0, ranked.Len())
	assert.NotNil(t, ranked.Names)
}

func TestCustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.PrefixTrapPenalty = 0
	m := New(w)

	assert.InDelta(t, 0.90, m.Score("metz", "Metzeral"), 1e-9)
	assert.Equal(t, w, m.Weights())
}
