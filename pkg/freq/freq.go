// Package freq stores word weights in a chained hash table.
package freq

import (
	"github.com/cespare/xxhash/v2"
)

const (
	// DefaultBuckets is the initial bucket count when New gets a non-positive size.
	DefaultBuckets = 1000
	maxLoadFactor  = 0.75
)

type entry struct {
	word   string
	weight int
	next   *entry
}

// Table maps words to weights. Collisions chain; new entries go to the head of their chain.
// After every insert the load factor is at most 0.75; exceeding it doubles the bucket count.
type Table struct {
	buckets []*entry
	size    int
}

// New creates a table with the given number of buckets.
func New(buckets int) *Table {
	if buckets <= 0 {
		buckets = DefaultBuckets
	}
	return &Table{buckets: make([]*entry, buckets)}
}

// Insert sets the weight for word, overwriting any existing weight.
func (t *Table) Insert(word string, weight int) {
	idx := t.bucket(word)
	for e := t.buckets[idx]; e != nil; e = e.next {
		if e.word == word {
			e.weight = weight
			return
		}
	}
	t.buckets[idx] = &entry{word: word, weight: weight, next: t.buckets[idx]}
	t.size++

	if t.LoadFactor() > maxLoadFactor {
		t.resize(len(t.buckets) * 2)
	}
}

// Lookup returns the weight stored for word.
func (t *Table) Lookup(word string) (int, bool) {
	if e := t.find(word); e != nil {
		return e.weight, true
	}
	return 0, false
}

// Contains reports whether word has a weight.
func (t *Table) Contains(word string) bool {
	return t.find(word) != nil
}

// Increment adds delta to an existing weight. It returns false when word is absent.
func (t *Table) Increment(word string, delta int) bool {
	e := t.find(word)
	if e == nil {
		return false
	}
	e.weight += delta
	return true
}

// Update replaces an existing weight. It returns false when word is absent.
func (t *Table) Update(word string, weight int) bool {
	e := t.find(word)
	if e == nil {
		return false
	}
	e.weight = weight
	return true
}

// Remove deletes word. It returns false when word is absent.
func (t *Table) Remove(word string) bool {
	idx := t.bucket(word)
	var prev *entry
	for e := t.buckets[idx]; e != nil; e = e.next {
		if e.word == word {
			if prev == nil {
				t.buckets[idx] = e.next
			} else {
				prev.next = e.next
			}
			t.size--
			return true
		}
		prev = e
	}
	return false
}

// Len returns the number of stored words.
func (t *Table) Len() int { return t.size }

// Buckets returns the current bucket count.
func (t *Table) Buckets() int { return len(t.buckets) }

// LoadFactor returns entries per bucket.
func (t *Table) LoadFactor() float64 {
	return float64(t.size) / float64(len(t.buckets))
}

func (t *Table) find(word string) *entry {
	for e := t.buckets[t.bucket(word)]; e != nil; e = e.next {
		if e.word == word {
			return e
		}
	}
	return nil
}

func (t *Table) bucket(word string) int {
	return int(xxhash.Sum64String(word) % uint64(len(t.buckets)))
}

func (t *Table) resize(n int) {
	old := t.buckets
	t.buckets = make([]*entry, n)
	for _, head := range old {
		for e := head; e != nil; {
			next := e.next
			idx := t.bucket(e.word)
			e.next = t.buckets[idx]
			t.buckets[idx] = e
			e = next
		}
	}
}
