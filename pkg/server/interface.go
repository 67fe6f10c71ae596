/*
Package server implements msgpack IPC for completion and spell checking.

The server reads a stream of msgpack encoded requests from stdin and writes one msgpack
response per request to stdout. Requests are handled one at a time, in order, with the
time taken in microseconds included in every response.

# IPC

Every request carries an ID, an operation and the operation's arguments:

	{"id": "r1", "op": "complete", "q": "prog", "l": 4}

Completions come back ranked, rank 1 being the best match:

	{"id": "r1", "s": [{"w": "program", "r": 1}, {"w": "programming", "r": 2}], "c": 2, "t": 31}

Spell checks report whether the word is known and, when it is not, what it was
probably meant to be:

	{"id": "r2", "op": "check", "q": "recieve"}
	{"id": "r2", "q": "recieve", "ok": false, "w": ["relieve", "receive"], "c": 2, "t": 54}

# Operations

	complete     q, l        prefix completion
	check        q, l, d     spell check with corrections for unknown words
	correct      q, l, d     corrections within d edits
	closest      q, l        corrections found by widening the radius
	bump         q           record one use of a word
	stats                    engine statistics
	clear_cache              drop cached results
	reset_stats              zero the hit and miss counters
	health                   liveness check

Limits and distances outside the configured bounds are clamped. Invalid requests get an
ErrorResponse with a 400 code.
*/
package server

// Request is a single IPC request. Fields not used by an operation are ignored.
type Request struct {
	ID       string `msgpack:"id"`
	Op       string `msgpack:"op"`
	Query    string `msgpack:"q,omitempty"`
	Limit    int    `msgpack:"l,omitempty"`
	Distance *int   `msgpack:"d,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// SpellResponse answers check, correct and closest.
type SpellResponse struct {
	ID          string   `msgpack:"id"`
	Query       string   `msgpack:"q"`
	Correct     *bool    `msgpack:"ok,omitempty"`
	Corrections []string `msgpack:"w"`
	Count       int      `msgpack:"c"`
	TimeTaken   int64    `msgpack:"t"`
}

// StatsResponse carries an engine snapshot.
type StatsResponse struct {
	ID              string  `msgpack:"id"`
	DictionarySize  int     `msgpack:"dictionary_size"`
	TreeNodes       int     `msgpack:"tree_nodes"`
	FilterBitsSet   int     `msgpack:"filter_bits_set"`
	FilterFPR       float64 `msgpack:"filter_fpr"`
	TableLoadFactor float64 `msgpack:"table_load_factor"`
	CacheEntries    int     `msgpack:"cache_entries"`
	CacheCapacity   int     `msgpack:"cache_capacity"`
	Hits            int     `msgpack:"hits"`
	Misses          int     `msgpack:"misses"`
	Queries         int     `msgpack:"queries"`
	HitRate         float64 `msgpack:"hit_rate"`
	TimeTaken       int64   `msgpack:"t"`
}

// StatusResponse acknowledges operations with no payload.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"code"`
}
