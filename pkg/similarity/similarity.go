// Package similarity scores how much vocabulary two texts share.
//
// The score is the Jaccard index over the sets of lowercase,
// whitespace-separated tokens. No punctuation stripping or stemming is done:
// it is a coarse duplicate detector.
package similarity

import "strings"

// Jaccard returns |A∩B| / |A∪B| for the token sets of a and b.
// Two empty texts score 0.
func Jaccard(a, b string) float64 {
	setA := Tokens(a)
	setB := Tokens(b)

	if len(setA) > len(setB) {
		setA, setB = setB, setA
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Tokens returns the set of unique lowercase tokens of s.
func Tokens(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
