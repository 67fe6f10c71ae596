package server

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/wordcheck/pkg/config"
	"github.com/bastiangx/wordcheck/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for completions and spell checks
type Server struct {
	engine   suggest.ISuggester
	query    config.QueryConfig
	decoder  *msgpack.Decoder
	encoder  *msgpack.Encoder
	requests int
}

// NewServer creates a server reading requests from r and writing responses to w.
func NewServer(engine suggest.ISuggester, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		engine:  engine,
		query:   cfg.Query,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
	}
}

// Start announces readiness and serves requests until the input ends.
// A clean EOF returns nil.
func (s *Server) Start() error {
	log.Debug("Starting Server.")

	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			// the stream cannot be resynchronised after a bad frame
			_ = s.send(ErrorResponse{Error: "invalid msgpack request", Code: 400})
			return fmt.Errorf("decoding request: %w", err)
		}
		s.requests++

		if err := s.send(s.handleRequest(req)); err != nil {
			return err
		}
	}
}

// handleRequest dispatches on the operation and returns the response to send.
func (s *Server) handleRequest(req Request) any {
	start := time.Now()

	switch req.Op {
	case "complete":
		return s.handleComplete(req, start)
	case "check":
		return s.handleCheck(req, start)
	case "correct":
		return s.handleCorrect(req, start)
	case "closest":
		return s.handleClosest(req, start)
	case "bump":
		if req.Query == "" {
			return errorResponse(req.ID, "missing 'q' parameter")
		}
		s.engine.UpdateFrequency(req.Query)
		return StatusResponse{ID: req.ID, Status: "ok"}
	case "stats":
		return s.handleStats(req, start)
	case "clear_cache":
		s.engine.ClearCache()
		return StatusResponse{ID: req.ID, Status: "ok"}
	case "reset_stats":
		s.engine.ResetStats()
		return StatusResponse{ID: req.ID, Status: "ok"}
	case "health":
		return StatusResponse{ID: req.ID, Status: "ok"}
	default:
		log.Debugf("Unknown op %q in request %s", req.Op, req.ID)
		return errorResponse(req.ID, fmt.Sprintf("unknown op: %s", req.Op))
	}
}

func (s *Server) handleComplete(req Request, start time.Time) any {
	if msg := s.validateQuery(req.Query); msg != "" {
		return errorResponse(req.ID, msg)
	}
	words := s.engine.Autocomplete(req.Query, s.limit(req.Limit))

	suggestions := make([]CompletionSuggestion, len(words))
	for i, w := range words {
		suggestions[i] = CompletionSuggestion{Word: w, Rank: uint16(i + 1)}
	}
	return CompletionResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   time.Since(start).Microseconds(),
	}
}

func (s *Server) handleCheck(req Request, start time.Time) any {
	if msg := s.validateQuery(req.Query); msg != "" {
		return errorResponse(req.ID, msg)
	}
	correct := s.engine.CheckSpelling(req.Query)
	corrections := []string{}
	if !correct {
		corrections = s.engine.GetCorrections(req.Query, s.distance(req.Distance), s.limit(req.Limit))
	}
	return SpellResponse{
		ID:          req.ID,
		Query:       req.Query,
		Correct:     &correct,
		Corrections: corrections,
		Count:       len(corrections),
		TimeTaken:   time.Since(start).Microseconds(),
	}
}

func (s *Server) handleCorrect(req Request, start time.Time) any {
	if msg := s.validateQuery(req.Query); msg != "" {
		return errorResponse(req.ID, msg)
	}
	corrections := s.engine.GetCorrections(req.Query, s.distance(req.Distance), s.limit(req.Limit))
	return SpellResponse{
		ID:          req.ID,
		Query:       req.Query,
		Corrections: corrections,
		Count:       len(corrections),
		TimeTaken:   time.Since(start).Microseconds(),
	}
}

func (s *Server) handleClosest(req Request, start time.Time) any {
	if msg := s.validateQuery(req.Query); msg != "" {
		return errorResponse(req.ID, msg)
	}
	words := s.engine.Closest(req.Query, s.limit(req.Limit))
	return SpellResponse{
		ID:          req.ID,
		Query:       req.Query,
		Corrections: words,
		Count:       len(words),
		TimeTaken:   time.Since(start).Microseconds(),
	}
}

func (s *Server) handleStats(req Request, start time.Time) any {
	st := s.engine.Stats()
	return StatsResponse{
		ID:              req.ID,
		DictionarySize:  st.DictionarySize,
		TreeNodes:       st.TreeNodes,
		FilterBitsSet:   st.FilterBitsSet,
		FilterFPR:       st.FilterFPR,
		TableLoadFactor: st.TableLoadFactor,
		CacheEntries:    st.CacheEntries,
		CacheCapacity:   st.CacheCapacity,
		Hits:            st.Hits,
		Misses:          st.Misses,
		Queries:         st.Queries,
		HitRate:         st.HitRate,
		TimeTaken:       time.Since(start).Microseconds(),
	}
}

// validateQuery returns a client-facing message when q is unusable, or "".
func (s *Server) validateQuery(q string) string {
	switch {
	case q == "":
		return "missing 'q' parameter"
	case len(q) < s.query.MinPrefix:
		return fmt.Sprintf("query must be at least %d characters", s.query.MinPrefix)
	case len(q) > s.query.MaxPrefix:
		return fmt.Sprintf("query exceeds maximum length of %d characters", s.query.MaxPrefix)
	}
	return ""
}

func (s *Server) limit(requested int) int {
	if requested < 1 {
		return s.query.DefaultLimit
	}
	return min(requested, s.query.MaxLimit)
}

func (s *Server) distance(requested *int) int {
	if requested == nil {
		return s.query.MaxDistance
	}
	return max(0, min(*requested, s.query.MaxDistance))
}

func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return fmt.Errorf("encoding response: %w", err)
	}
	return nil
}

func errorResponse(id, message string) ErrorResponse {
	return ErrorResponse{ID: id, Error: message, Code: 400}
}
