// Package trie is the prefix index behind completions.
//
// Words are stored by their lowercase a-z path. Any other byte in an inserted or
// queried word is skipped, so "can't" and "cant" share one path. Each terminal node
// carries the word's weight; inserting the same word again overwrites it.
package trie

import (
	"github.com/bastiangx/wordcheck/pkg/rank"
)

const alphabetSize = 26

type node struct {
	children [alphabetSize]*node
	terminal bool
	weight   int
}

// Trie maps words to weights along a 26-way character path.
type Trie struct {
	root  *node
	count int
}

// New creates an empty trie.
func New() *Trie {
	return &Trie{root: &node{}}
}

// Canonical returns the form a word is indexed under: ASCII letters lowercased,
// everything else dropped.
func Canonical(word string) string {
	buf := make([]byte, 0, len(word))
	for i := 0; i < len(word); i++ {
		if idx, ok := index(word[i]); ok {
			buf = append(buf, byte('a'+idx))
		}
	}
	return string(buf)
}

// Insert stores word with weight, replacing any previous weight.
func (t *Trie) Insert(word string, weight int) {
	if word == "" {
		return
	}
	current := t.root
	walked := false
	for i := 0; i < len(word); i++ {
		idx, ok := index(word[i])
		if !ok {
			continue
		}
		if current.children[idx] == nil {
			current.children[idx] = &node{}
		}
		current = current.children[idx]
		walked = true
	}
	if !walked {
		return
	}
	if !current.terminal {
		current.terminal = true
		t.count++
	}
	current.weight = weight
}

// Contains reports whether word was inserted. Prefixes of words do not count.
func (t *Trie) Contains(word string) bool {
	n := t.find(word)
	return n != nil && n.terminal
}

// Weight returns the weight stored for word.
func (t *Trie) Weight(word string) (int, bool) {
	n := t.find(word)
	if n == nil || !n.terminal {
		return 0, false
	}
	return n.weight, true
}

// Bump adds delta to the weight of an existing word. Unknown words are ignored.
func (t *Trie) Bump(word string, delta int) bool {
	n := t.find(word)
	if n == nil || !n.terminal {
		return false
	}
	n.weight += delta
	return true
}

// WordsWithPrefix returns every word under prefix with its weight, in no particular order.
func (t *Trie) WordsWithPrefix(prefix string) []rank.Candidate {
	start := t.find(prefix)
	if start == nil {
		return []rank.Candidate{}
	}
	return collect(start, Canonical(prefix))
}

// Suggest returns up to limit words under prefix, heaviest first,
// ties broken lexicographically.
func (t *Trie) Suggest(prefix string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}
	matches := t.WordsWithPrefix(prefix)
	if len(matches) == 0 {
		return []string{}
	}
	h := rank.NewMaxHeap(rank.ByWeight, matches...)
	return rank.Words(h.ExtractTopK(limit))
}

// Count returns the number of distinct words stored.
func (t *Trie) Count() int {
	return t.count
}

// find walks the path for s and returns the node it ends on.
// An empty path (nothing indexable in s) returns nil.
func (t *Trie) find(s string) *node {
	current := t.root
	walked := false
	for i := 0; i < len(s); i++ {
		idx, ok := index(s[i])
		if !ok {
			continue
		}
		current = current.children[idx]
		if current == nil {
			return nil
		}
		walked = true
	}
	if !walked {
		return nil
	}
	return current
}

type frame struct {
	n    *node
	word []byte
}

// collect gathers terminals below start with an explicit stack so deep
// dictionaries cannot exhaust the goroutine stack.
func collect(start *node, prefix string) []rank.Candidate {
	var results []rank.Candidate
	stack := []frame{{n: start, word: []byte(prefix)}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.n.terminal {
			results = append(results, rank.Candidate{Word: string(top.word), Weight: top.n.weight})
		}
		for i := alphabetSize - 1; i >= 0; i-- {
			child := top.n.children[i]
			if child == nil {
				continue
			}
			word := make([]byte, len(top.word)+1)
			copy(word, top.word)
			word[len(top.word)] = byte('a' + i)
			stack = append(stack, frame{n: child, word: word})
		}
	}
	return results
}

func index(c byte) (int, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return int(c - 'A'), true
	}
	return 0, false
}
