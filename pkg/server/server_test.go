package server

import (
	"bytes"
	"slices"
	"testing"

	"github.com/bastiangx/wordcheck/internal/logger"
	"github.com/bastiangx/wordcheck/pkg/config"
	"github.com/bastiangx/wordcheck/pkg/dictionary"
	"github.com/bastiangx/wordcheck/pkg/suggest"
	"github.com/vmihailenco/msgpack/v5"
)

func newTestEngine() *suggest.Engine {
	opts := suggest.DefaultOptions()
	opts.Logger = logger.Quiet("test")
	e := suggest.NewEngine(opts)
	e.LoadEntries([]dictionary.Entry{
		{Word: "program", Weight: 450},
		{Word: "programming", Weight: 430},
		{Word: "programmer", Weight: 420},
		{Word: "programs", Weight: 410},
		{Word: "receive", Weight: 300},
		{Word: "relieve", Weight: 50},
	})
	return e
}

// roundTrip runs the server over the encoded requests and returns a decoder over its output,
// positioned after the ready message.
func roundTrip(t *testing.T, engine suggest.ISuggester, cfg *config.Config, requests ...Request) *msgpack.Decoder {
	t.Helper()
	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range requests {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("failed to encode request: %v", err)
		}
	}

	var out bytes.Buffer
	srv := NewServer(engine, cfg, &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("server returned error: %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	if err := dec.Decode(&ready); err != nil {
		t.Fatalf("failed to decode ready message: %v", err)
	}
	if ready.Status != "ready" {
		t.Fatalf("expected ready status, got %q", ready.Status)
	}
	return dec
}

func TestComplete(t *testing.T) {
	dec := roundTrip(t, newTestEngine(), nil, Request{ID: "r1", Op: "complete", Query: "prog", Limit: 3})

	var resp CompletionResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "r1" || resp.Count != 3 {
		t.Fatalf("unexpected response %+v", resp)
	}
	expected := []string{"program", "programming", "programmer"}
	for i, s := range resp.Suggestions {
		if s.Word != expected[i] || s.Rank != uint16(i+1) {
			t.Errorf("suggestion %d: expected %s/%d, got %s/%d", i, expected[i], i+1, s.Word, s.Rank)
		}
	}
}

func TestCheckAndCorrect(t *testing.T) {
	dec := roundTrip(t, newTestEngine(), nil,
		Request{ID: "c1", Op: "check", Query: "receive"},
		Request{ID: "c2", Op: "check", Query: "recieve"},
		Request{ID: "c3", Op: "correct", Query: "recieve", Limit: 1},
	)

	var known SpellResponse
	if err := dec.Decode(&known); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if known.Correct == nil || !*known.Correct || known.Count != 0 {
		t.Errorf("receive should be correct with no corrections, got %+v", known)
	}

	var unknown SpellResponse
	if err := dec.Decode(&unknown); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if unknown.Correct == nil || *unknown.Correct {
		t.Errorf("recieve should be flagged, got %+v", unknown)
	}
	if !slices.Contains(unknown.Corrections, "receive") {
		t.Errorf("expected receive among corrections, got %v", unknown.Corrections)
	}

	var corrected SpellResponse
	if err := dec.Decode(&corrected); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !slices.Equal(corrected.Corrections, []string{"relieve"}) {
		t.Errorf("expected [relieve], got %v", corrected.Corrections)
	}
}

func TestValidationErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Query.MaxPrefix = 5

	dec := roundTrip(t, newTestEngine(), cfg,
		Request{ID: "e1", Op: "complete"},
		Request{ID: "e2", Op: "complete", Query: "programming"},
		Request{ID: "e3", Op: "explode", Query: "x"},
	)

	for _, id := range []string{"e1", "e2", "e3"} {
		var resp ErrorResponse
		if err := dec.Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.ID != id || resp.Code != 400 || resp.Error == "" {
			t.Errorf("expected 400 error for %s, got %+v", id, resp)
		}
	}
}

func TestLimitAndDistanceClamping(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Query.MaxLimit = 2
	cfg.Query.MaxDistance = 1
	big := 5

	dec := roundTrip(t, newTestEngine(), cfg,
		Request{ID: "l1", Op: "complete", Query: "prog", Limit: 50},
		Request{ID: "d1", Op: "correct", Query: "recieve", Distance: &big},
	)

	var comp CompletionResponse
	if err := dec.Decode(&comp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if comp.Count != 2 {
		t.Errorf("limit should clamp to 2, got %d", comp.Count)
	}

	var corr SpellResponse
	if err := dec.Decode(&corr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// receive is two edits away and must be excluded by the clamp
	if slices.Contains(corr.Corrections, "receive") {
		t.Errorf("distance should clamp to 1, got %v", corr.Corrections)
	}
}

func TestStatsAndMaintenance(t *testing.T) {
	engine := newTestEngine()
	dec := roundTrip(t, engine, nil,
		Request{ID: "q1", Op: "complete", Query: "prog"},
		Request{ID: "q2", Op: "complete", Query: "prog"},
		Request{ID: "s1", Op: "stats"},
		Request{ID: "b1", Op: "bump", Query: "programs"},
		Request{ID: "x1", Op: "clear_cache"},
		Request{ID: "x2", Op: "reset_stats"},
		Request{ID: "h1", Op: "health"},
	)

	var skip CompletionResponse
	for i := 0; i < 2; i++ {
		if err := dec.Decode(&skip); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}

	var stats StatsResponse
	if err := dec.Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Hits != 1 || stats.Misses != 1 || stats.DictionarySize != 6 {
		t.Errorf("unexpected stats %+v", stats)
	}

	for _, id := range []string{"b1", "x1", "x2", "h1"} {
		var status StatusResponse
		if err := dec.Decode(&status); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if status.ID != id || status.Status != "ok" {
			t.Errorf("expected ok for %s, got %+v", id, status)
		}
	}

	if w, _ := engine.Weight("programs"); w != 411 {
		t.Errorf("bump should have reached the engine, weight=%d", w)
	}
	if s := engine.CacheStats(); s.Hits != 0 || s.Misses != 0 {
		t.Errorf("reset_stats should have zeroed counters, got %+v", s)
	}
}

func TestMalformedInput(t *testing.T) {
	in := bytes.NewReader([]byte{0xc1}) // never-used msgpack code
	var out bytes.Buffer

	srv := NewServer(newTestEngine(), nil, in, &out)
	if err := srv.Start(); err == nil {
		t.Errorf("expected an error for an undecodable request")
	}
}
