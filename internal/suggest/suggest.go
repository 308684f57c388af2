// Package suggest implements "did you mean" suggestions for misspelled
// names against a closed vocabulary.
//
// The matcher follows the behaviour of rustc's find_best_match_for_name: an
// exact case-insensitive match wins outright, otherwise the candidate with
// the smallest Damerau-Levenshtein distance within the cap is chosen. Ties
// go to the earlier candidate so results are deterministic.
package suggest

import (
	"strings"
)

// Best returns the candidate most similar to name, within maxDistance
// edits. The boolean reports whether any candidate was close enough.
func Best(name string, candidates []string, maxDistance int) (best string, ok bool) {
	for _, candidate := range candidates {
		if strings.EqualFold(name, candidate) {
			return candidate, true
		}
	}

	bestDistance := maxDistance + 1

	for _, candidate := range candidates {
		if d := distance(name, candidate); d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}

	return best, bestDistance <= maxDistance
}

// distance returns the Damerau-Levenshtein distance between a and b,
// counting insertions, deletions, substitutions and transpositions of
// adjacent runes.
func distance(a, b string) int {
	ar, br := []rune(a), []rune(b)

	if len(ar) == 0 {
		return len(br)
	}

	if len(br) == 0 {
		return len(ar)
	}

	// Rolling three-row optimal string alignment matrix
	prev2 := make([]int, len(br)+1)
	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ar); i++ {
		curr[0] = i

		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}

			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)

			if i > 1 && j > 1 && ar[i-1] == br[j-2] && ar[i-2] == br[j-1] {
				curr[j] = min(curr[j], prev2[j-2]+1) // transposition
			}
		}

		prev2, prev, curr = prev, curr, prev2
	}

	return prev[len(br)]
}
