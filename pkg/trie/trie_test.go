package trie

import (
	"fmt"
	"slices"
	"testing"
)

func buildTestTrie() *Trie {
	tr := New()
	words := map[string]int{
		"program":     450,
		"programming": 430,
		"programmer":  420,
		"programs":    410,
		"code":        400,
		"coder":       120,
		"codec":       120,
	}
	for w, f := range words {
		tr.Insert(w, f)
	}
	return tr
}

func TestInsertAndContains(t *testing.T) {
	tr := buildTestTrie()

	testCases := []struct {
		word     string
		expected bool
	}{
		{"program", true},
		{"PROGRAM", true},
		{"programs", true},
		{"prog", false},
		{"programmers", false},
		{"code", true},
		{"cod", false},
		{"", false},
		{"123", false},
	}

	for _, tc := range testCases {
		t.Run(tc.word, func(t *testing.T) {
			if got := tr.Contains(tc.word); got != tc.expected {
				t.Errorf("Contains(%q): expected %v, got %v", tc.word, tc.expected, got)
			}
		})
	}
}

// every inserted word is found and every prefix of it suggests it with its weight
func TestRoundTrip(t *testing.T) {
	words := map[string]int{"alpha": 3, "alphabet": 7, "alps": 1, "beta": 9, "bet": 2}
	tr := New()
	for w, f := range words {
		tr.Insert(w, f)
	}

	for w, f := range words {
		if !tr.Contains(w) {
			t.Errorf("Contains(%q) = false after insert", w)
		}
		for i := 1; i <= len(w); i++ {
			prefix := w[:i]
			found := false
			for _, c := range tr.WordsWithPrefix(prefix) {
				if c.Word == w {
					found = true
					if c.Weight != f {
						t.Errorf("prefix %q: weight for %q expected %d, got %d", prefix, w, f, c.Weight)
					}
				}
			}
			if !found {
				t.Errorf("prefix %q did not return %q", prefix, w)
			}
			if !slices.Contains(tr.Suggest(prefix, len(words)), w) {
				t.Errorf("Suggest(%q) missing %q", prefix, w)
			}
		}
	}
}

func TestSuggestOrdering(t *testing.T) {
	tr := buildTestTrie()

	testCases := []struct {
		prefix   string
		limit    int
		expected []string
	}{
		{"prog", 10, []string{"program", "programming", "programmer", "programs"}},
		{"prog", 2, []string{"program", "programming"}},
		{"cod", 10, []string{"code", "codec", "coder"}},
		{"Cod", 1, []string{"code"}},
		{"x", 10, []string{}},
		{"prog", 0, []string{}},
		{"", 10, []string{}},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s/%d", tc.prefix, tc.limit), func(t *testing.T) {
			got := tr.Suggest(tc.prefix, tc.limit)
			if !slices.Equal(got, tc.expected) {
				t.Errorf("Suggest(%q, %d): expected %v, got %v", tc.prefix, tc.limit, tc.expected, got)
			}
		})
	}
}

func TestReinsertOverwrites(t *testing.T) {
	tr := New()
	tr.Insert("hello", 10)
	tr.Insert("hello", 3)

	if tr.Count() != 1 {
		t.Errorf("expected 1 word after reinsert, got %d", tr.Count())
	}
	if w, ok := tr.Weight("hello"); !ok || w != 3 {
		t.Errorf("expected weight 3 after reinsert, got %d (found=%v)", w, ok)
	}
	matches := tr.WordsWithPrefix("hel")
	if len(matches) != 1 {
		t.Errorf("expected exactly one terminal under 'hel', got %d", len(matches))
	}
}

func TestNonAlphabeticAliasing(t *testing.T) {
	tr := New()
	tr.Insert("can't", 5)

	if !tr.Contains("cant") {
		t.Errorf("punctuation should be skipped: 'cant' should alias to \"can't\"")
	}
	if !tr.Contains("C-A-N-T") {
		t.Errorf("separators and case should be ignored")
	}
	tr.Insert("cant", 9)
	if tr.Count() != 1 {
		t.Errorf("aliased words should share one terminal, count=%d", tr.Count())
	}
	if got := tr.Suggest("can", 5); !slices.Equal(got, []string{"cant"}) {
		t.Errorf("expected canonical [cant], got %v", got)
	}

	tr.Insert("!!!", 1)
	if tr.Count() != 1 {
		t.Errorf("a word with nothing indexable must be a no-op, count=%d", tr.Count())
	}
}

func TestBump(t *testing.T) {
	tr := buildTestTrie()

	if !tr.Bump("coder", 5) {
		t.Errorf("Bump on existing word should succeed")
	}
	if w, _ := tr.Weight("coder"); w != 125 {
		t.Errorf("expected weight 125, got %d", w)
	}
	if got := tr.Suggest("cod", 3); !slices.Equal(got, []string{"code", "coder", "codec"}) {
		t.Errorf("bumped word should move ahead of its tie, got %v", got)
	}

	if tr.Bump("cod", 1) {
		t.Errorf("Bump on a prefix that is not a word should be a no-op")
	}
	if tr.Bump("missing", 1) {
		t.Errorf("Bump on an absent word should be a no-op")
	}
	if tr.Count() != 7 {
		t.Errorf("Bump must not add words, count=%d", tr.Count())
	}
}

func TestCanonical(t *testing.T) {
	testCases := map[string]string{
		"Hello":      "hello",
		"can't":      "cant",
		"e-mail":     "email",
		"naïve":      "nave",
		"123":        "",
		"":           "",
		"UPPER case": "uppercase",
	}
	for in, expected := range testCases {
		if got := Canonical(in); got != expected {
			t.Errorf("Canonical(%q): expected %q, got %q", in, expected, got)
		}
	}
}

func BenchmarkSuggest(b *testing.B) {
	tr := New()
	for i := 0; i < 20000; i++ {
		tr.Insert(fmt.Sprintf("word%c%c%c", 'a'+i%26, 'a'+(i/26)%26, 'a'+(i/676)%26), i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Suggest("word", 10)
	}
}
