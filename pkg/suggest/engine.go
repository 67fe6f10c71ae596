package suggest

import (
	"errors"

	"github.com/bastiangx/wordcheck/internal/logger"
	"github.com/bastiangx/wordcheck/pkg/bktree"
	"github.com/bastiangx/wordcheck/pkg/bloom"
	"github.com/bastiangx/wordcheck/pkg/dictionary"
	"github.com/bastiangx/wordcheck/pkg/freq"
	"github.com/bastiangx/wordcheck/pkg/rank"
	"github.com/bastiangx/wordcheck/pkg/trie"
	"github.com/charmbracelet/log"
)

// Options sizes the engine's structures.
type Options struct {
	CacheCapacity      int
	FilterBits         int
	FilterHashes       int
	TableBuckets       int
	InvalidateOnUpdate bool
	Logger             *log.Logger
}

// DefaultOptions returns the stock sizing: a 100 entry cache, a 10,000 bit filter with
// 4 hashes and a 1,000 bucket frequency table.
func DefaultOptions() Options {
	return Options{
		CacheCapacity: 100,
		FilterBits:    bloom.DefaultBits,
		FilterHashes:  bloom.DefaultHashes,
		TableBuckets:  freq.DefaultBuckets,
	}
}

// Engine answers completion and correction queries.
//
// Every word is reduced once with trie.Canonical before it reaches any structure, so the
// trie, filter, table and tree always agree on what a word is. The engine does no locking;
// callers sharing one across goroutines must serialise access.
type Engine struct {
	trie   *trie.Trie
	filter *bloom.Filter
	table  *freq.Table
	tree   *bktree.Tree
	cache  *resultCache
	log    *log.Logger

	hits    int
	misses  int
	queries int
}

// NewEngine creates an empty engine.
func NewEngine(opts Options) *Engine {
	l := opts.Logger
	if l == nil {
		l = logger.New("engine")
	}
	return &Engine{
		trie:   trie.New(),
		filter: bloom.New(opts.FilterBits, opts.FilterHashes),
		table:  freq.New(opts.TableBuckets),
		tree:   bktree.New(),
		cache:  newResultCache(opts.CacheCapacity, opts.InvalidateOnUpdate, l),
		log:    l,
	}
}

// LoadDictionary reads path and adds every entry. It returns the number of entries
// added; a missing, unreadable or empty file yields 0 and is logged.
func (e *Engine) LoadDictionary(path string) int {
	e.log.Infof("Loading dictionary from: %s", path)

	result, err := dictionary.Load(path)
	if err != nil {
		if errors.Is(err, dictionary.ErrEmptyDictionary) {
			e.log.Errorf("Dictionary is empty: %v", err)
		} else {
			e.log.Errorf("Failed to load dictionary: %v", err)
		}
		return 0
	}
	if result.Skipped > 0 {
		e.log.Warnf("Skipped %d malformed lines in %s", result.Skipped, path)
	}

	added := e.LoadEntries(result.Entries)
	e.log.Infof("Dictionary loaded: %d words", e.DictionarySize())
	e.log.Debugf("Filter false positive rate: %.4f%%", e.filter.FalsePositiveRate()*100)
	return added
}

// LoadEntries adds entries and returns how many were accepted.
func (e *Engine) LoadEntries(entries []dictionary.Entry) int {
	added := 0
	for _, entry := range entries {
		if e.AddWord(entry.Word, entry.Weight) {
			added++
		}
	}
	return added
}

// AddWord inserts word with weight into every structure. Words with nothing indexable
// and negative weights are rejected. Re-adding a word overwrites its weight.
func (e *Engine) AddWord(word string, weight int) bool {
	canon := trie.Canonical(word)
	if canon == "" || weight < 0 {
		e.log.Debugf("Rejected word %q (weight %d)", word, weight)
		return false
	}
	if canon != word && e.trie.Contains(canon) {
		e.log.Debugf("%q shares an entry with %q", word, canon)
	}

	e.trie.Insert(canon, weight)
	e.filter.Add(canon)
	e.table.Insert(canon, weight)
	e.tree.Insert(canon)
	e.cache.invalidatePrefixesOf(canon)
	return true
}

// Autocomplete returns up to limit words starting with prefix, heaviest first,
// ties broken alphabetically. Results are cached under "auto:"+prefix.
func (e *Engine) Autocomplete(prefix string, limit int) []string {
	canon := trie.Canonical(prefix)
	if canon == "" || limit <= 0 {
		return []string{}
	}
	e.queries++

	if cached, ok := e.cache.get(autoKey(canon)); ok && cached.covers(limit, 0) {
		e.hits++
		return cached.take(limit)
	}
	e.misses++

	words := e.trie.Suggest(canon, limit)
	res := cachedResult{words: words, limit: limit}
	e.cache.putAuto(canon, res)
	return res.take(limit)
}

// CheckSpelling reports whether word is in the dictionary. The bloom filter answers
// negatives on its own; positives are confirmed against the trie.
func (e *Engine) CheckSpelling(word string) bool {
	canon := trie.Canonical(word)
	if canon == "" {
		return false
	}
	if !e.filter.MightContain(canon) {
		return false
	}
	return e.trie.Contains(canon)
}

// GetCorrections returns up to limit dictionary words within maxDistance edits of word,
// nearest first, then heaviest, then alphabetical. Results are cached under "spell:"+word.
func (e *Engine) GetCorrections(word string, maxDistance, limit int) []string {
	canon := trie.Canonical(word)
	if canon == "" || limit <= 0 || maxDistance < 0 {
		return []string{}
	}
	e.queries++

	if cached, ok := e.cache.get(spellKey(canon)); ok && cached.covers(limit, maxDistance) {
		e.hits++
		return cached.take(limit)
	}
	e.misses++

	matches := e.tree.SearchWithin(canon, maxDistance)
	candidates := make([]rank.Candidate, len(matches))
	for i, m := range matches {
		weight, _ := e.table.Lookup(m.Word)
		candidates[i] = rank.Candidate{Word: m.Word, Weight: weight, Distance: m.Distance}
	}
	words := rank.Words(rank.Top(candidates, rank.ByCorrection, limit))

	res := cachedResult{words: words, limit: limit, maxDistance: maxDistance}
	e.cache.putSpell(canon, res)
	return res.take(limit)
}

// Closest returns up to limit words nearest to word, widening the search radius
// as far as needed. It bypasses the cache and the query counters.
func (e *Engine) Closest(word string, limit int) []string {
	canon := trie.Canonical(word)
	if canon == "" || limit <= 0 {
		return []string{}
	}
	return bktree.Words(e.tree.FindClosest(canon, limit))
}

// UpdateFrequency adds one to the weight of word in the trie and the frequency table.
// Unknown words are ignored. Cached completions are left alone unless the engine was
// built with InvalidateOnUpdate.
func (e *Engine) UpdateFrequency(word string) {
	canon := trie.Canonical(word)
	if canon == "" {
		return
	}
	bumped := e.trie.Bump(canon, 1)
	e.table.Increment(canon, 1)
	if bumped {
		e.cache.invalidatePrefixesOf(canon)
	}
}

// Weight returns the frequency table weight of word.
func (e *Engine) Weight(word string) (int, bool) {
	canon := trie.Canonical(word)
	if canon == "" {
		return 0, false
	}
	return e.table.Lookup(canon)
}

// FilterFalsePositiveRate returns the bloom filter's estimated false positive rate.
func (e *Engine) FilterFalsePositiveRate() float64 {
	return e.filter.FalsePositiveRate()
}

// DictionarySize returns the number of distinct words loaded.
func (e *Engine) DictionarySize() int {
	return e.trie.Count()
}

// ClearCache empties the result cache. Counters are kept; use ResetStats for those.
func (e *Engine) ClearCache() {
	e.cache.clear()
}

// ResetStats zeroes the hit, miss and query counters.
func (e *Engine) ResetStats() {
	e.hits = 0
	e.misses = 0
	e.queries = 0
}
