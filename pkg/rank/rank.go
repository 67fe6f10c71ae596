// Package rank orders candidate words for completion and correction results.
//
// Every ordering here is total: ties on the primary key always fall through to a
// lexicographic comparison, so identical inputs give identical output order.
package rank

import (
	"slices"
)

// Candidate is a word being ranked. Distance is only meaningful for corrections.
type Candidate struct {
	Word     string
	Weight   int
	Distance int
}

// Comparator returns a negative number when a sorts before b, positive when after, 0 when equal.
type Comparator[T any] func(a, b T) int

// Lexicographic compares two words ignoring ASCII case.
// When one word is a prefix of the other, the shorter one comes first.
func Lexicographic(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		ca, cb := lower(a[i]), lower(b[i])
		if ca < cb {
			return -1
		}
		if ca > cb {
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// ByWeight orders candidates by weight, highest first, then lexicographically.
func ByWeight(a, b Candidate) int {
	if a.Weight != b.Weight {
		if a.Weight > b.Weight {
			return -1
		}
		return 1
	}
	return Lexicographic(a.Word, b.Word)
}

// ByCorrection orders correction candidates by distance (lowest first),
// then weight (highest first), then lexicographically.
func ByCorrection(a, b Candidate) int {
	if a.Distance != b.Distance {
		if a.Distance < b.Distance {
			return -1
		}
		return 1
	}
	return ByWeight(a, b)
}

// Sort sorts items in place with the given comparator. The sort is stable.
func Sort[T any](items []T, cmp Comparator[T]) {
	slices.SortStableFunc(items, (func(a, b T) int)(cmp))
}

// Words extracts the words of candidates, preserving order.
func Words(candidates []Candidate) []string {
	words := make([]string, len(candidates))
	for i, c := range candidates {
		words[i] = c.Word
	}
	return words
}

// Top sorts candidates with cmp and returns at most limit of them.
// A limit of zero or less returns an empty slice.
func Top(candidates []Candidate, cmp Comparator[Candidate], limit int) []Candidate {
	if limit <= 0 || len(candidates) == 0 {
		return []Candidate{}
	}
	Sort(candidates, cmp)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
