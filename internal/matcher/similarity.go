package matcher

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// StringSimilarity computes a lexical similarity in [0,1] between two
// strings: a character-level sequence-alignment ratio blended with
// token-set Jaccard overlap, weighted towards the sequence ratio.
//
// Comparisons involving an empty string score 0 so the cascade stays total.
// The measure is symmetric.
func StringSimilarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}

	seqRatio := sequenceRatio(a, b)

	wordsA := fieldSet(a)
	wordsB := fieldSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return seqRatio
	}

	intersection := 0
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	wordRatio := float64(intersection) / float64(union)

	return seqRatio*0.7 + wordRatio*0.3
}

// sequenceRatio is the classic sequence-matcher ratio scale:
// 2*LCS(a,b) / (len(a)+len(b)), computed on the longest common
// subsequence at character level. Symmetric by construction.
func sequenceRatio(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	return 2.0 * float64(lcsLength(a, b)) / float64(total)
}

func lcsLength(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// closestMatch returns the candidate most similar to target under
// normalized Levenshtein similarity, provided it clears the cutoff.
func closestMatch(target string, candidates []string, cutoff float64) (string, bool) {
	best := ""
	bestScore := cutoff
	found := false
	for _, c := range candidates {
		score := levenshteinSimilarity(target, c)
		if score >= bestScore && (!found || score > bestScore) {
			best = c
			bestScore = score
			found = true
		}
	}
	return best, found
}

func levenshteinSimilarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

func fieldSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}
