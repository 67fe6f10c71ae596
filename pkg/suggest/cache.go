package suggest

import (
	"strings"

	"github.com/bastiangx/wordcheck/pkg/lru"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

const (
	autoKeyPrefix  = "auto:"
	spellKeyPrefix = "spell:"
)

// cachedResult is one cached query answer together with the parameters that produced it.
type cachedResult struct {
	words       []string
	limit       int
	maxDistance int
}

// covers reports whether the cached answer is complete for a request with the given
// limit and maxDistance. A list shorter than its own limit is exhaustive, so it also
// answers any larger limit.
func (c cachedResult) covers(limit, maxDistance int) bool {
	if c.maxDistance != maxDistance {
		return false
	}
	return c.limit >= limit || len(c.words) < c.limit
}

func (c cachedResult) take(limit int) []string {
	n := min(limit, len(c.words))
	out := make([]string, n)
	copy(out, c.words[:n])
	return out
}

// resultCache wraps the LRU with the key scheme and, optionally, a patricia index of
// prefixes that currently own an autocomplete entry.
type resultCache struct {
	entries  *lru.Cache[cachedResult]
	prefixes *patricia.Trie
	log      *log.Logger
}

func newResultCache(capacity int, trackPrefixes bool, logger *log.Logger) *resultCache {
	rc := &resultCache{
		entries: lru.New[cachedResult](capacity),
		log:     logger,
	}
	if trackPrefixes {
		rc.prefixes = patricia.NewTrie()
		rc.entries.OnEvict(func(key string, _ cachedResult) {
			if prefix, ok := strings.CutPrefix(key, autoKeyPrefix); ok {
				rc.prefixes.Delete(patricia.Prefix(prefix))
			}
		})
	}
	return rc
}

func autoKey(prefix string) string { return autoKeyPrefix + prefix }

func spellKey(word string) string { return spellKeyPrefix + word }

func (rc *resultCache) get(key string) (cachedResult, bool) {
	return rc.entries.Get(key)
}

func (rc *resultCache) putAuto(prefix string, res cachedResult) {
	rc.entries.Put(autoKey(prefix), res)
	if rc.prefixes != nil {
		rc.prefixes.Set(patricia.Prefix(prefix), struct{}{})
	}
}

func (rc *resultCache) putSpell(word string, res cachedResult) {
	rc.entries.Put(spellKey(word), res)
}

// invalidatePrefixesOf drops every cached completion whose prefix is a prefix of word,
// along with every cached correction list, since a weight change can reorder those.
// It returns how many entries were dropped; without prefix tracking it does nothing.
func (rc *resultCache) invalidatePrefixesOf(word string) int {
	if rc.prefixes == nil {
		return 0
	}

	var stale []string
	err := rc.prefixes.VisitPrefixes(patricia.Prefix(word), func(p patricia.Prefix, _ patricia.Item) error {
		stale = append(stale, autoKey(string(p)))
		return nil
	})
	if err != nil {
		rc.log.Errorf("Error visiting cached prefixes of %q: %v", word, err)
	}
	for _, key := range rc.entries.Keys() {
		if strings.HasPrefix(key, spellKeyPrefix) {
			stale = append(stale, key)
		}
	}

	for _, key := range stale {
		rc.entries.Remove(key)
	}
	if len(stale) > 0 {
		rc.log.Debugf("Invalidated %d cached results for %q", len(stale), word)
	}
	return len(stale)
}

func (rc *resultCache) clear() {
	rc.entries.Clear()
	if rc.prefixes != nil {
		rc.prefixes = patricia.NewTrie()
	}
}

func (rc *resultCache) len() int { return rc.entries.Len() }

func (rc *resultCache) capacity() int { return rc.entries.Capacity() }
