package matcher

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	// partialScale discounts a best-window match so a full-string match still ranks first.
	partialScale = 0.90
	// tokenSortScale discounts a word-order-insensitive match.
	tokenSortScale = 0.95
	// partialLengthRatio is the length ratio above which window matching is considered.
	partialLengthRatio = 1.5
)

// ratio is the edit-distance similarity of two strings in [0, 1].
func ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

// partialRatio is the best ratio of short against every window of long with the same length.
func partialRatio(short, long string) float64 {
	rs, rl := []rune(short), []rune(long)
	if len(rs) == 0 {
		if len(rl) == 0 {
			return 1
		}
		return 0
	}
	if len(rs) >= len(rl) {
		return ratio(short, long)
	}

	best := 0.0
	for start := 0; start+len(rs) <= len(rl); start++ {
		score := ratio(short, string(rl[start:start+len(rs)]))
		if score > best {
			best = score
			if best == 1 {
				break
			}
		}
	}
	return best
}

// tokenSortRatio compares both strings after sorting their words.
func tokenSortRatio(a, b string) float64 {
	return ratio(sortedTokens(a), sortedTokens(b))
}

func sortedTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// similarity blends whole-string, windowed and word-order-insensitive ratios of two
// normalized strings, keeping the best of them.
func similarity(query, candidate string) float64 {
	if query == candidate {
		return 1
	}

	best := ratio(query, candidate)

	short, long := query, candidate
	if len([]rune(short)) > len([]rune(long)) {
		short, long = long, short
	}
	shortLen, longLen := len([]rune(short)), len([]rune(long))
	if shortLen > 0 && float64(longLen)/float64(shortLen) >= partialLengthRatio {
		best = max(best, partialRatio(short, long)*partialScale)
	}

	best = max(best, tokenSortRatio(query, candidate)*tokenSortScale)
	return best
}
