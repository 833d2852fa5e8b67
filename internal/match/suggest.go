package match

import (
	"sort"
)

// DefaultMinSuggestScore is the lowest similarity that still produces a suggestion.
const DefaultMinSuggestScore = 0.6

// Suggestion is one ranked candidate name.
type Suggestion struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name after normalization and returns
// those at or above minScore, best first, ties broken by name.
func Rank(name string, candidates []string, minScore float64) []Suggestion {
	norm := NormalizeTypeName(name)

	var result []Suggestion

	for _, c := range candidates {
		if c == name {
			continue
		}

		score := Similarity(norm, NormalizeTypeName(c))
		if score >= minScore {
			result = append(result, Suggestion{Name: c, Score: score})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}

		return result[i].Name < result[j].Name
	})

	return result
}

// Suggest returns at most limit candidate names similar to name.
func Suggest(name string, candidates []string, limit int) []string {
	ranked := Rank(name, candidates, DefaultMinSuggestScore)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	names := make([]string, len(ranked))
	for i, s := range ranked {
		names[i] = s.Name
	}

	return names
}
