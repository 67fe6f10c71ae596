//go:build test

package mem

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/bastiangx/wordcheck/internal/logger"
	"github.com/bastiangx/wordcheck/pkg/dictionary"
	"github.com/bastiangx/wordcheck/pkg/suggest"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var longPatterns = [][]string{
	{"h", "he", "hel", "hell", "hello"},
	{"w", "wo", "wor", "worl", "world"},
	{"p", "pr", "pro", "prog", "progr", "progra", "program"},
	{"c", "co", "com", "comp", "compu", "comput", "computer"},
	{"d", "de", "dev", "deve", "devel", "develo", "develop", "developm", "developme", "developmen", "development"},
}

var misspellings = []string{"helo", "wrold", "progam", "computr", "devlopment", "recieve"}

func newEngine(cacheCapacity int) *suggest.Engine {
	opts := suggest.DefaultOptions()
	opts.CacheCapacity = cacheCapacity
	opts.InvalidateOnUpdate = true
	opts.Logger = logger.Quiet("mem")
	engine := suggest.NewEngine(opts)

	var entries []dictionary.Entry
	for i, pattern := range longPatterns {
		word := pattern[len(pattern)-1]
		entries = append(entries, dictionary.Entry{Word: word, Weight: 1000 - i})
		for j := 0; j < 50; j++ {
			entries = append(entries, dictionary.Entry{Word: fmt.Sprintf("%s%c%c", word, 'a'+j%26, 'a'+j/26), Weight: j + 1})
		}
	}
	engine.LoadEntries(entries)
	return engine
}

func heapAlloc() uint64 {
	runtime.GC()
	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapAlloc
}

func TestMemoryLeakBasic(t *testing.T) {
	iterations := []int{100, 500, 1000, 2500, 5000}

	for _, iterCount := range iterations {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			engine := newEngine(100)
			runCycle(engine, 10)
			baseline := heapAlloc()

			runCycle(engine, iterCount)
			after := heapAlloc()

			growth := int64(after) - int64(baseline)
			t.Logf("baseline=%d after=%d growth=%d", baseline, after, growth)
			if growth > 2<<20 {
				t.Errorf("heap grew by %d bytes after %d iterations", growth, iterCount)
			}
			if s := engine.Stats(); s.CacheEntries > s.CacheCapacity {
				t.Errorf("cache exceeded capacity: %d/%d", s.CacheEntries, s.CacheCapacity)
			}
		})
	}
}

func TestMemoryStabilityLongRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long-running memory stability test in short mode")
	}

	engine := newEngine(50)
	runCycle(engine, 10)
	baseline := heapAlloc()

	var peak uint64
	for cycle := 0; cycle < 50; cycle++ {
		runCycle(engine, 200)
		if cycle%10 == 0 {
			engine.ClearCache()
		}
		if h := heapAlloc(); h > peak {
			peak = h
		}
	}
	t.Logf("baseline=%d peak=%d", baseline, peak)
	if peak > baseline+(4<<20) {
		t.Errorf("heap peaked %d bytes above baseline", peak-baseline)
	}
}

// runCycle mixes completions, corrections and frequency bumps.
func runCycle(engine *suggest.Engine, iterations int) {
	for i := 0; i < iterations; i++ {
		pattern := longPatterns[i%len(longPatterns)]
		for _, prefix := range pattern {
			engine.Autocomplete(prefix, 10)
		}
		engine.GetCorrections(misspellings[i%len(misspellings)], 2, 5)
		engine.UpdateFrequency(pattern[len(pattern)-1])
	}
}
