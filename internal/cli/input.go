// Package cli handles cmd line input for trying completions and spell checks interactively.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bastiangx/wordcheck/internal/utils"
	"github.com/bastiangx/wordcheck/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/cheynewallace/tabby"
)

// InputHandler reads lines from its input and answers each one.
//
//	prog      completions for "prog"
//	?recieve  spell check, with corrections when the word is unknown
//	+program  record one use of "program"
//	:stats    engine statistics
//	:clear    drop cached results
//	:reset    zero the hit and miss counters
type InputHandler struct {
	engine          suggest.ISuggester
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	maxDistance     int
	noFilter        bool
	in              io.Reader
	out             io.Writer
}

// Options configures an InputHandler.
type Options struct {
	MinPrefix   int
	MaxPrefix   int
	Limit       int
	MaxDistance int
	NoFilter    bool
}

// NewInputHandler creates a handler reading from in and printing results to out.
func NewInputHandler(engine suggest.ISuggester, opts Options, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		engine:          engine,
		minPrefixLength: opts.MinPrefix,
		maxPrefixLength: opts.MaxPrefix,
		suggestLimit:    opts.Limit,
		maxDistance:     opts.MaxDistance,
		noFilter:        opts.NoFilter,
		in:              in,
		out:             out,
	}
}

// Start runs the prompt loop until the input ends.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, "wordcheck CLI")
	fmt.Fprintln(h.out, "type a prefix, ?word to spell check, +word to bump, :stats, :clear or :reset (Ctrl+D to exit)")
	reader := bufio.NewReader(h.in)

	for {
		fmt.Fprint(h.out, "> ")
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			h.HandleInput(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(h.out)
				return nil
			}
			return err
		}
	}
}

// HandleInput processes one line.
func (h *InputHandler) HandleInput(line string) {
	switch {
	case line == ":stats":
		h.printStats()
	case line == ":clear":
		h.engine.ClearCache()
		fmt.Fprintln(h.out, "cache cleared")
	case line == ":reset":
		h.engine.ResetStats()
		fmt.Fprintln(h.out, "stats reset")
	case strings.HasPrefix(line, "?"):
		h.handleCheck(strings.TrimSpace(line[1:]))
	case strings.HasPrefix(line, "+"):
		h.handleBump(strings.TrimSpace(line[1:]))
	default:
		h.handleComplete(line)
	}
}

func (h *InputHandler) handleComplete(prefix string) {
	if len(prefix) < h.minPrefixLength {
		log.Errorf("Prefix too short: %s", prefix)
		return
	}
	if len(prefix) > h.maxPrefixLength {
		log.Errorf("Prefix too long: %s", prefix)
		return
	}
	if !h.noFilter && !utils.IsValidInput(prefix) {
		log.Warnf("No suggestions found for prefix: '%s' (filtered out)", prefix)
		return
	}

	start := time.Now()
	words := h.engine.Autocomplete(prefix, h.suggestLimit)
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(words) == 0 {
		log.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}

	fmt.Fprintf(h.out, "Found %d suggestions for prefix '%s':\n", len(words), prefix)
	t := h.table()
	t.AddHeader("#", "WORD", "FREQ")
	for i, w := range words {
		weight, _ := h.engine.Weight(w)
		t.AddLine(i+1, w, utils.FormatWithCommas(weight))
	}
	t.Print()
}

func (h *InputHandler) handleCheck(word string) {
	if word == "" {
		log.Errorf("Nothing to check")
		return
	}

	if h.engine.CheckSpelling(word) {
		fmt.Fprintf(h.out, "'%s' is spelled correctly\n", word)
		return
	}

	corrections := h.engine.GetCorrections(word, h.maxDistance, h.suggestLimit)
	label := "Corrections"
	if len(corrections) == 0 {
		corrections = h.engine.Closest(word, h.suggestLimit)
		label = "Closest words"
	}
	fmt.Fprintf(h.out, "'%s' is not in the dictionary\n", word)
	if len(corrections) == 0 {
		return
	}

	fmt.Fprintf(h.out, "%s:\n", label)
	t := h.table()
	t.AddHeader("#", "WORD", "FREQ")
	for i, w := range corrections {
		weight, _ := h.engine.Weight(w)
		t.AddLine(i+1, w, utils.FormatWithCommas(weight))
	}
	t.Print()
}

func (h *InputHandler) handleBump(word string) {
	if word == "" {
		log.Errorf("Nothing to bump")
		return
	}
	h.engine.UpdateFrequency(word)
	weight, ok := h.engine.Weight(word)
	if !ok {
		log.Warnf("'%s' is not in the dictionary", word)
		return
	}
	fmt.Fprintf(h.out, "'%s' frequency is now %s\n", word, utils.FormatWithCommas(weight))
}

func (h *InputHandler) printStats() {
	PrintStats(h.out, h.engine.Stats())
}

func (h *InputHandler) table() *tabby.Tabby {
	return tabby.NewCustom(tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0))
}

// PrintStats writes a stats snapshot as a two column table.
func PrintStats(out io.Writer, s suggest.Stats) {
	t := tabby.NewCustom(tabwriter.NewWriter(out, 0, 0, 2, ' ', 0))
	t.AddHeader("METRIC", "VALUE")
	t.AddLine("Dictionary size", utils.FormatWithCommas(s.DictionarySize))
	t.AddLine("BK-tree nodes", utils.FormatWithCommas(s.TreeNodes))
	t.AddLine("Filter elements", utils.FormatWithCommas(s.FilterElements))
	t.AddLine("Filter bits", fmt.Sprintf("%s (k=%d)", utils.FormatWithCommas(s.FilterBits), s.FilterHashes))
	t.AddLine("Filter bits set", utils.FormatWithCommas(s.FilterBitsSet))
	t.AddLine("Filter FPR", fmt.Sprintf("%.4f%%", s.FilterFPR*100))
	t.AddLine("Table load factor", fmt.Sprintf("%.2f", s.TableLoadFactor))
	t.AddLine("Cache entries", fmt.Sprintf("%d/%d", s.CacheEntries, s.CacheCapacity))
	t.AddLine("Queries", s.Queries)
	t.AddLine("Cache hits", s.Hits)
	t.AddLine("Cache misses", s.Misses)
	t.AddLine("Hit rate", fmt.Sprintf("%.2f%%", s.HitRate))
	t.Print()
}
