// Package bloom implements the existence filter consulted before the trie on spell checks.
//
// The filter never produces false negatives: if MightContain returns false the word was
// never added. Bits are stored in a roaring bitmap so sparse filters stay small.
package bloom

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cespare/xxhash/v2"
)

const (
	// DefaultBits is the bit vector length used when New gets a non-positive size.
	DefaultBits = 10000
	// DefaultHashes is the number of hash functions used when New gets a non-positive count.
	DefaultHashes = 4
)

// Filter is a fixed-size bloom filter. The zero value is not usable; call New.
type Filter struct {
	bits   *roaring.Bitmap
	size   uint64
	hashes int
	count  int
}

// New creates a filter with m bits and k hash functions.
func New(m, k int) *Filter {
	if m <= 0 {
		m = DefaultBits
	}
	size := min(uint64(m), math.MaxUint32)
	if k <= 0 {
		k = DefaultHashes
	}
	return &Filter{
		bits:   roaring.New(),
		size:   size,
		hashes: k,
	}
}

// Add records word in the filter.
func (f *Filter) Add(word string) {
	for i := 0; i < f.hashes; i++ {
		f.bits.Add(uint32(f.position(word, i)))
	}
	f.count++
}

// MightContain reports whether word may have been added.
// A false result is definite.
func (f *Filter) MightContain(word string) bool {
	for i := 0; i < f.hashes; i++ {
		if !f.bits.Contains(uint32(f.position(word, i))) {
			return false
		}
	}
	return true
}

// FalsePositiveRate estimates the probability that MightContain returns true
// for a word that was never added, given the current element count.
func (f *Filter) FalsePositiveRate() float64 {
	if f.count == 0 {
		return 0
	}
	k := float64(f.hashes)
	exponent := -k * float64(f.count) / float64(f.size)
	return math.Pow(1-math.Exp(exponent), k)
}

// Clear resets every bit and the element count.
func (f *Filter) Clear() {
	f.bits.Clear()
	f.count = 0
}

// Count returns the number of Add calls since creation or the last Clear.
func (f *Filter) Count() int { return f.count }

// Size returns the bit vector length.
func (f *Filter) Size() int { return int(f.size) }

// Hashes returns the number of hash functions.
func (f *Filter) Hashes() int { return f.hashes }

// BitsSet returns how many bits are currently set.
func (f *Filter) BitsSet() int { return int(f.bits.GetCardinality()) }

// position returns the bit index chosen by the i-th hash function.
// The first four are fixed string hashes; the rest are derived from an xxhash
// digest by double hashing.
func (f *Filter) position(word string, i int) uint64 {
	switch i {
	case 0:
		return polynomial(word, f.size)
	case 1:
		return djb2(word) % f.size
	case 2:
		return sdbm(word) % f.size
	case 3:
		return fnv1a(word) % f.size
	}
	digest := xxhash.Sum64String(foldString(word))
	h1 := digest & 0xffffffff
	h2 := (digest >> 32) | 1
	return (h1 + uint64(i)*h2) % f.size
}

func polynomial(word string, m uint64) uint64 {
	var h uint64
	for i := 0; i < len(word); i++ {
		h = (h*31 + uint64(fold(word[i]))) % m
	}
	return h
}

func djb2(word string) uint64 {
	var h uint64 = 5381
	for i := 0; i < len(word); i++ {
		h = (h << 5) + h + uint64(fold(word[i]))
	}
	return h
}

func sdbm(word string) uint64 {
	var h uint64
	for i := 0; i < len(word); i++ {
		h = uint64(fold(word[i])) + (h << 6) + (h << 16) - h
	}
	return h
}

func fnv1a(word string) uint64 {
	var h uint32 = 2166136261
	for i := 0; i < len(word); i++ {
		h ^= uint32(fold(word[i]))
		h *= 16777619
	}
	return uint64(h)
}

func fold(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func foldString(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				b[j] = fold(b[j])
			}
			return string(b)
		}
	}
	return s
}
