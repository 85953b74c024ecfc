package appconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railroute.dev/internal/matcher"
)

func TestLoadTuningDefaults(t *testing.T) {
	tuning, err := LoadTuning("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), tuning)
	assert.Equal(t, matcher.DefaultWeights(), tuning.Matcher)
}

func TestParseTuningOverridesOnlyGivenKeys(t *testing.T) {
	tuning, err := ParseTuning([]byte(`
matcher:
  prefixTrapPenalty: 0.5
  hubTokens: [gare, station]
resolver:
  parallelThreshold: 16
  parallelism: 4
`))
	require.NoError(t, err)

	assert.Equal(t, 0.5, tuning.Matcher.PrefixTrapPenalty)
	assert.Equal(t, 0.20, tuning.Matcher.WordBoundaryBonus)
	assert.Equal(t, []string{"gare", "station"}, tuning.Matcher.HubTokens)
	assert.Equal(t, matcher.DefaultWeights().AddressTokens, tuning.Matcher.AddressTokens)
	assert.Equal(t, 16, tuning.Resolver.ParallelThreshold)
	assert.Equal(t, 4, tuning.Resolver.Parallelism)
}

func TestParseTuningRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"malformed yaml":     "matcher: [",
		"negative bonus":     "matcher:\n  hubBonus: -0.1\n",
		"penalty above one":  "matcher:\n  prefixTrapPenalty: 1.5\n",
		"empty token":        "matcher:\n  addressTokens: [rue, \"\"]\n",
		"negative threshold": "resolver:\n  parallelThreshold: -1\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTuning([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadTuningFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yml")
	require.NoError(t, os.WriteFile(path, []byte("matcher:\n  wordBoundaryBonus: 0.3\n"), 0o600))

	tuning, err := LoadTuning(path)
	require.NoError(t, err)
	assert.Equal(t, 0.3, tuning.Matcher.WordBoundaryBonus)

	_, err = LoadTuning(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
