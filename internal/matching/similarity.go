package matching

import (
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultFuzzyThreshold is the minimum similarity the fuzzy strategy
// accepts unless overridden.
const DefaultFuzzyThreshold = 0.7

// thresholdEpsilon absorbs float rounding when a similarity ratio lands
// exactly on the configured threshold.
const thresholdEpsilon = 1e-9

// Similarity computes a normalized string-similarity ratio in [0, 1]:
// one minus the Levenshtein distance divided by the longer rune length.
// Two empty strings are identical. The function is fixed; thresholds in
// configuration are calibrated against exactly this ratio.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}

	longest := utf8.RuneCountInString(a)
	if l := utf8.RuneCountInString(b); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1
	}

	distance := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

// AtLeast reports whether the similarity reaches the threshold, treating
// values within float epsilon of the threshold as reaching it.
func AtLeast(similarity, threshold float64) bool {
	return similarity >= threshold-thresholdEpsilon
}
