package main

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/bastiangx/wordcheck/internal/logger"
	"github.com/bastiangx/wordcheck/pkg/config"
	"github.com/bastiangx/wordcheck/pkg/dictionary"
	"github.com/bastiangx/wordcheck/pkg/suggest"
)

func newBatchEngine() *suggest.Engine {
	opts := suggest.DefaultOptions()
	opts.Logger = logger.Quiet("test")
	engine := suggest.NewEngine(opts)
	engine.LoadEntries([]dictionary.Entry{
		{Word: "program", Weight: 4500},
		{Word: "programs", Weight: 410},
		{Word: "receive", Weight: 300},
		{Word: "relieve", Weight: 50},
	})
	return engine
}

func TestParseBatchMode(t *testing.T) {
	testCases := []struct {
		input   string
		want    batchMode
		wantErr bool
	}{
		{"auto", batchAuto, false},
		{"autocomplete", batchAuto, false},
		{"spell", batchSpell, false},
		{"fuzzy", 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := parseBatchMode(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parseBatchMode(%q) error = %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("parseBatchMode(%q): expected %v, got %v", tc.input, tc.want, got)
			}
		})
	}
}

func TestRunBatchAutocomplete(t *testing.T) {
	engine := newBatchEngine()
	report, err := runBatch(engine, batchAuto, strings.NewReader("prog\n\nrec\n"))
	if err != nil {
		t.Fatalf("runBatch failed: %v", err)
	}
	if len(report.rows) != 2 {
		t.Fatalf("expected 2 rows (blank skipped), got %d", len(report.rows))
	}
	if want := []string{"program", "programs"}; !slices.Equal(report.rows[0].words, want) {
		t.Errorf("expected %v, got %v", want, report.rows[0].words)
	}

	var out bytes.Buffer
	report.Print(&out)
	if !strings.Contains(out.String(), "2 queries in") {
		t.Errorf("summary missing:\n%s", out.String())
	}
}

func TestRunBatchSpell(t *testing.T) {
	engine := newBatchEngine()
	report, err := runBatch(engine, batchSpell, strings.NewReader("receive\nrecieve\n"))
	if err != nil {
		t.Fatalf("runBatch failed: %v", err)
	}
	if !report.rows[0].correct || report.rows[0].words != nil {
		t.Errorf("receive should be correct with no corrections, got %+v", report.rows[0])
	}
	if report.rows[1].correct {
		t.Errorf("recieve should not be correct")
	}
	if want := []string{"relieve", "receive"}; !slices.Equal(report.rows[1].words, want) {
		t.Errorf("expected corrections %v, got %v", want, report.rows[1].words)
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := config.DefaultConfig().Engine
	cfg.CacheCapacity = 7
	cfg.InvalidateOnUpdate = true

	opts := engineOptions(cfg)
	if opts.CacheCapacity != 7 || !opts.InvalidateOnUpdate {
		t.Errorf("engine options not mapped: %+v", opts)
	}
	if opts.FilterBits != cfg.FilterBits || opts.FilterHashes != cfg.FilterHashes || opts.TableBuckets != cfg.TableBuckets {
		t.Errorf("sizing not mapped: %+v", opts)
	}
	if opts.Logger == nil {
		t.Errorf("expected an engine logger")
	}
}
