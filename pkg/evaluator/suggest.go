package evaluator

import (
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestDistance is the largest edit distance still offered as a
// "did you mean" suggestion.
const maxSuggestDistance = 2

// closestMatch returns the candidate nearest to name by edit distance,
// or "" when nothing comes close enough to be a plausible typo. Used
// to decorate name and config errors with a suggestion.
func closestMatch(name string, candidates []string) string {
	best := ""
	bestDist := maxSuggestDistance + 1

	for _, candidate := range candidates {
		d := fuzzy.LevenshteinDistance(name, candidate)
		if d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	return best
}
