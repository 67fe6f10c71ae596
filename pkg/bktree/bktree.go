// Package bktree indexes words by edit distance for spelling corrections.
//
// Each child edge is labelled with its distance to the parent word. The triangle
// inequality lets SearchWithin skip every subtree whose edge label lies outside
// [d-max, d+max], where d is the query's distance to the parent.
package bktree

import (
	"github.com/bastiangx/wordcheck/pkg/editdist"
	"github.com/bastiangx/wordcheck/pkg/rank"
)

// maxWidening is the largest radius FindClosest will try.
const maxWidening = 10

type node struct {
	word     string
	children map[int]*node
}

// Result is a word found within some distance of a query.
type Result struct {
	Word     string
	Distance int
}

// Tree is a BK-tree over the Levenshtein metric.
type Tree struct {
	root *node
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{}
}

// Insert adds word. Words at distance 0 from an existing node are ignored,
// which includes case variants of words already present.
func (t *Tree) Insert(word string) {
	if word == "" {
		return
	}
	if t.root == nil {
		t.root = &node{word: word}
		return
	}

	current := t.root
	for {
		d := editdist.Distance(current.word, word)
		if d == 0 {
			return
		}
		child, ok := current.children[d]
		if !ok {
			if current.children == nil {
				current.children = make(map[int]*node)
			}
			current.children[d] = &node{word: word}
			return
		}
		current = child
	}
}

// SearchWithin returns every word at distance at most maxDist from word,
// sorted by distance then lexicographically.
func (t *Tree) SearchWithin(word string, maxDist int) []Result {
	results := []Result{}
	if t.root == nil || word == "" || maxDist < 0 {
		return results
	}

	stack := []*node{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		d := editdist.Distance(word, n.word)
		if d <= maxDist {
			results = append(results, Result{Word: n.word, Distance: d})
		}

		low, high := max(d-maxDist, 1), d+maxDist
		for k, child := range n.children {
			if k >= low && k <= high {
				stack = append(stack, child)
			}
		}
	}

	sortResults(results)
	return results
}

// FindClosest widens the search radius from 0 up to 10 until limit distinct words
// are found, returning them closest first.
func (t *Tree) FindClosest(word string, limit int) []Result {
	if limit <= 0 || t.root == nil || word == "" {
		return []Result{}
	}

	seen := make(map[string]bool)
	closest := make([]Result, 0, limit)
	for radius := 0; radius <= maxWidening && len(closest) < limit; radius++ {
		for _, r := range t.SearchWithin(word, radius) {
			if seen[r.Word] {
				continue
			}
			seen[r.Word] = true
			closest = append(closest, r)
			if len(closest) >= limit {
				break
			}
		}
	}
	return closest
}

// Size counts the words in the tree.
func (t *Tree) Size() int {
	if t.root == nil {
		return 0
	}
	count := 0
	stack := []*node{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		for _, child := range n.children {
			stack = append(stack, child)
		}
	}
	return count
}

// Words returns the words of results, preserving order.
func Words(results []Result) []string {
	words := make([]string, len(results))
	for i, r := range results {
		words[i] = r.Word
	}
	return words
}

func sortResults(results []Result) {
	rank.Sort(results, func(a, b Result) int {
		if a.Distance != b.Distance {
			return a.Distance - b.Distance
		}
		return rank.Lexicographic(a.Word, b.Word)
	})
}
