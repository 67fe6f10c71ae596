package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bastiangx/wordcheck/pkg/suggest"
	"github.com/cheynewallace/tabby"
)

type batchMode int

const (
	batchAuto batchMode = iota
	batchSpell
)

const (
	batchLimit       = 10
	batchCorrections = 5
	batchDistance    = 2
)

func parseBatchMode(s string) (batchMode, error) {
	switch s {
	case "auto", "autocomplete":
		return batchAuto, nil
	case "spell", "spellcheck":
		return batchSpell, nil
	}
	return 0, fmt.Errorf("unknown batch mode %q (want auto or spell)", s)
}

type batchRow struct {
	query   string
	correct bool
	words   []string
	elapsed time.Duration
}

type batchReport struct {
	mode  batchMode
	rows  []batchRow
	total time.Duration
}

// runBatch answers one query per non blank line of r.
func runBatch(engine suggest.ISuggester, mode batchMode, r io.Reader) (*batchReport, error) {
	report := &batchReport{mode: mode}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		q := strings.TrimSpace(scanner.Text())
		if q == "" {
			continue
		}

		start := time.Now()
		row := batchRow{query: q}
		switch mode {
		case batchSpell:
			row.correct = engine.CheckSpelling(q)
			if !row.correct {
				row.words = engine.GetCorrections(q, batchDistance, batchCorrections)
			}
		default:
			row.words = engine.Autocomplete(q, batchLimit)
		}
		row.elapsed = time.Since(start)

		report.total += row.elapsed
		report.rows = append(report.rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading queries: %w", err)
	}
	return report, nil
}

// Print writes one table row per query followed by the totals.
func (r *batchReport) Print(out io.Writer) {
	t := tabby.NewCustom(tabwriter.NewWriter(out, 0, 0, 2, ' ', 0))
	if r.mode == batchSpell {
		t.AddHeader("QUERY", "OK", "CORRECTIONS", "TIME")
	} else {
		t.AddHeader("QUERY", "RESULTS", "SUGGESTIONS", "TIME")
	}
	for _, row := range r.rows {
		if r.mode == batchSpell {
			t.AddLine(row.query, row.correct, strings.Join(row.words, ", "), row.elapsed)
		} else {
			t.AddLine(row.query, len(row.words), strings.Join(row.words, ", "), row.elapsed)
		}
	}
	t.Print()

	fmt.Fprintf(out, "\n%d queries in %v", len(r.rows), r.total)
	if len(r.rows) > 0 {
		fmt.Fprintf(out, " (avg %v)", r.total/time.Duration(len(r.rows)))
	}
	fmt.Fprintln(out)
}
