// Package fuzzy registers string distance and similarity functions.
package fuzzy

import (
	"github.com/agext/levenshtein"

	"github.com/nerrad567/sqlean-go/internal/ext/sqlfn"
)

// Init registers the fuzzy functions on conn.
func Init(conn sqlfn.Conn) error {
	return sqlfn.Register(conn,
		sqlfn.Scalar("levenshtein", Levenshtein),
		sqlfn.Scalar("dlevenshtein", DamerauLevenshtein),
		sqlfn.Scalar("hamming", Hamming),
		sqlfn.Scalar("fuzzy_similarity", Similarity),
	)
}

// Levenshtein returns the edit distance between a and b counted in runes.
func Levenshtein(a, b string) int64 {
	return int64(levenshtein.Distance(a, b, nil))
}

// Similarity returns 1 - distance/max(len), in the range [0, 1].
func Similarity(a, b string) float64 {
	return levenshtein.Similarity(a, b, nil)
}

// DamerauLevenshtein returns the optimal string alignment distance, which
// also counts a transposition of two adjacent runes as one edit.
func DamerauLevenshtein(a, b string) int64 {
	s, t := []rune(a), []rune(b)
	if len(s) == 0 {
		return int64(len(t))
	}
	if len(t) == 0 {
		return int64(len(s))
	}

	// Three rolling rows: two back, previous, current.
	prev2 := make([]int, len(t)+1)
	prev := make([]int, len(t)+1)
	cur := make([]int, len(t)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s); i++ {
		cur[0] = i
		for j := 1; j <= len(t); j++ {
			cost := 1
			if s[i-1] == t[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && s[i-1] == t[j-2] && s[i-2] == t[j-1] {
				cur[j] = min(cur[j], prev2[j-2]+1)
			}
		}
		prev2, prev, cur = prev, cur, prev2
	}
	return int64(prev[len(t)])
}

// Hamming returns the number of positions at which a and b differ, or -1
// when they have different rune lengths.
func Hamming(a, b string) int64 {
	s, t := []rune(a), []rune(b)
	if len(s) != len(t) {
		return -1
	}
	var n int64
	for i := range s {
		if s[i] != t[i] {
			n++
		}
	}
	return n
}
