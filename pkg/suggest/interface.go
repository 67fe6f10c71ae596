// Package suggest is the query engine: it keeps the trie, bloom filter, frequency table
// and BK-tree in step and answers completion and correction queries through an LRU cache.
package suggest

// ISuggester is what the CLI and IPC server need from an engine.
type ISuggester interface {
	// Autocomplete returns up to limit words starting with prefix, heaviest first.
	Autocomplete(prefix string, limit int) []string

	// CheckSpelling reports whether word is in the dictionary.
	CheckSpelling(word string) bool

	// GetCorrections returns up to limit dictionary words within maxDistance edits of word.
	GetCorrections(word string, maxDistance, limit int) []string

	// Closest widens the correction radius until limit words are found.
	Closest(word string, limit int) []string

	// UpdateFrequency records one more use of word.
	UpdateFrequency(word string)

	// Weight returns the stored frequency of word.
	Weight(word string) (int, bool)

	CacheStats() CacheStats
	Stats() Stats
	ClearCache()
	ResetStats()
}
