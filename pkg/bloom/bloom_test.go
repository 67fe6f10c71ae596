package bloom

import (
	"fmt"
	"math"
	"testing"
)

func TestNoFalseNegatives(t *testing.T) {
	testCases := []struct {
		bits   int
		hashes int
	}{
		{1, 1},
		{7, 3},
		{64, 4},
		{1000, 6},
		{10000, 4},
		{10000, 9},
	}

	words := []string{"apple", "banana", "cherry", "Dog", "e", "receive", "programming"}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("m=%d/k=%d", tc.bits, tc.hashes), func(t *testing.T) {
			f := New(tc.bits, tc.hashes)
			for _, w := range words {
				f.Add(w)
			}
			for _, w := range words {
				if !f.MightContain(w) {
					t.Errorf("MightContain(%q) = false after Add", w)
				}
			}
			if f.Count() != len(words) {
				t.Errorf("expected count %d, got %d", len(words), f.Count())
			}
		})
	}
}

func TestCaseInsensitiveHashing(t *testing.T) {
	f := New(10000, 6)
	f.Add("Hello")
	if !f.MightContain("hello") || !f.MightContain("HELLO") {
		t.Errorf("hashes should fold ASCII case")
	}
}

func TestEmptyFilter(t *testing.T) {
	f := New(0, 0)
	if f.Size() != DefaultBits || f.Hashes() != DefaultHashes {
		t.Errorf("expected defaults %d/%d, got %d/%d", DefaultBits, DefaultHashes, f.Size(), f.Hashes())
	}
	if f.MightContain("anything") {
		t.Errorf("empty filter should contain nothing")
	}
	if rate := f.FalsePositiveRate(); rate != 0 {
		t.Errorf("empty filter false positive rate should be 0, got %f", rate)
	}
}

func TestFalsePositiveRate(t *testing.T) {
	f := New(10000, 4)
	for i := 0; i < 1000; i++ {
		f.Add(fmt.Sprintf("word%d", i))
	}

	expected := math.Pow(1-math.Exp(-4.0*1000/10000), 4)
	if got := f.FalsePositiveRate(); math.Abs(got-expected) > 1e-12 {
		t.Errorf("expected rate %f, got %f", expected, got)
	}
	if got := f.FalsePositiveRate(); got <= 0 || got >= 1 {
		t.Errorf("rate must be within (0,1), got %f", got)
	}
}

func TestClear(t *testing.T) {
	f := New(1000, 4)
	f.Add("alpha")
	f.Add("beta")
	if f.BitsSet() == 0 {
		t.Fatalf("expected bits to be set after Add")
	}

	f.Clear()
	if f.Count() != 0 || f.BitsSet() != 0 {
		t.Errorf("Clear should reset bits and count, got count=%d bits=%d", f.Count(), f.BitsSet())
	}
	if f.MightContain("alpha") {
		t.Errorf("cleared filter should not report alpha")
	}
}

func TestHashFamily(t *testing.T) {
	// djb2("a") = 5381*33 + 97
	if got := djb2("a"); got != 177670 {
		t.Errorf("djb2(a): expected 177670, got %d", got)
	}
	if got := polynomial("ab", 1000); got != (97*31+98)%1000 {
		t.Errorf("polynomial(ab): expected %d, got %d", (97*31+98)%1000, got)
	}
	if got := fnv1a(""); got != 2166136261 {
		t.Errorf("fnv1a of empty string should be the offset basis, got %d", got)
	}
	if got := sdbm("a"); got != 97 {
		t.Errorf("sdbm(a): expected 97, got %d", got)
	}
}

func BenchmarkMightContain(b *testing.B) {
	f := New(100000, 4)
	for i := 0; i < 10000; i++ {
		f.Add(fmt.Sprintf("word%d", i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.MightContain("word5000")
	}
}
