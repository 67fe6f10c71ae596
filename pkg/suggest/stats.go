package suggest

import (
	"fmt"
	"strings"
)

// CacheStats reports cache effectiveness. HitRate is a percentage of all counted queries.
type CacheStats struct {
	Hits    int
	Misses  int
	HitRate float64
}

// Stats is a point-in-time snapshot of the whole engine.
type Stats struct {
	DictionarySize  int
	TreeNodes       int
	FilterElements  int
	FilterBits      int
	FilterBitsSet   int
	FilterHashes    int
	FilterFPR       float64
	TableEntries    int
	TableLoadFactor float64
	CacheEntries    int
	CacheCapacity   int
	Hits            int
	Misses          int
	Queries         int
	HitRate         float64
}

// CacheStats returns the hit and miss counters and the hit rate.
func (e *Engine) CacheStats() CacheStats {
	return CacheStats{
		Hits:    e.hits,
		Misses:  e.misses,
		HitRate: e.hitRate(),
	}
}

// Stats walks every structure and returns a snapshot. The BK-tree count is a full traversal.
func (e *Engine) Stats() Stats {
	return Stats{
		DictionarySize:  e.trie.Count(),
		TreeNodes:       e.tree.Size(),
		FilterElements:  e.filter.Count(),
		FilterBits:      e.filter.Size(),
		FilterBitsSet:   e.filter.BitsSet(),
		FilterHashes:    e.filter.Hashes(),
		FilterFPR:       e.filter.FalsePositiveRate(),
		TableEntries:    e.table.Len(),
		TableLoadFactor: e.table.LoadFactor(),
		CacheEntries:    e.cache.len(),
		CacheCapacity:   e.cache.capacity(),
		Hits:            e.hits,
		Misses:          e.misses,
		Queries:         e.queries,
		HitRate:         e.hitRate(),
	}
}

func (e *Engine) hitRate() float64 {
	if e.queries == 0 {
		return 0
	}
	return float64(e.hits) / float64(e.queries) * 100
}

// String renders the snapshot as a short report.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dictionary Size: %d words\n", s.DictionarySize)
	fmt.Fprintf(&b, "Total Queries: %d\n", s.Queries)
	fmt.Fprintf(&b, "Cache Hits: %d\n", s.Hits)
	fmt.Fprintf(&b, "Cache Misses: %d\n", s.Misses)
	if s.Queries > 0 {
		fmt.Fprintf(&b, "Cache Hit Rate: %.2f%%\n", s.HitRate)
	}
	fmt.Fprintf(&b, "Cache Entries: %d/%d\n", s.CacheEntries, s.CacheCapacity)
	fmt.Fprintf(&b, "Bloom Filter Bits Set: %d/%d\n", s.FilterBitsSet, s.FilterBits)
	fmt.Fprintf(&b, "Bloom Filter FPR: %.4f%%\n", s.FilterFPR*100)
	fmt.Fprintf(&b, "BK-Tree Size: %d nodes\n", s.TreeNodes)
	fmt.Fprintf(&b, "Table Load Factor: %.2f\n", s.TableLoadFactor)
	return b.String()
}
