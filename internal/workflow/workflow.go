// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workflow drives the two-phase search/analysis state machine.
//
// An initial broad search produces a partial result: discovered sources,
// placeholder properties. An explicit content-analysis trigger consumes
// those same sources and produces the finalized result, which replaces
// the partial one. Every transition produces a new Result value; held
// results are never mutated in place, so an observer between transitions
// never sees a half-updated structure.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pdiddy/techdata-engine/pkg/types"
)

// State is the session's position in the search/analysis lifecycle.
type State string

const (
	// StateIdle holds no result.
	StateIdle State = "idle"

	// StateSearching has a search request in flight.
	StateSearching State = "searching"

	// StatePartial holds a partial result: sources discovered, properties
	// not yet extracted. Content analysis may be triggered from here.
	StatePartial State = "partial"

	// StateAnalyzing has a content-analysis request in flight.
	StateAnalyzing State = "analyzing"

	// StateComplete holds a finalized result.
	StateComplete State = "complete"

	// StateFailed is terminal for the failed request; the previously held
	// result, if any, remains active.
	StateFailed State = "failed"
)

// Sentinel errors for workflow guard conditions.
var (
	// ErrAnalysisInFlight rejects a second analysis trigger while one is
	// pending, so two writers never race to replace the active result.
	ErrAnalysisInFlight = errors.New("analysis already in flight")

	// ErrNoActiveResult rejects operations that need a held result.
	ErrNoActiveResult = errors.New("no active result")
)

// SearchRequest holds the parameters for the initial broad search.
type SearchRequest struct {
	// Query is the user's product query: free text, a URL, a PDF
	// reference, or a manufacturer domain depending on Method.
	Query string

	// Method selects how products are identified.
	Method types.SearchMethod

	// MinConsistentSources is the agreement threshold for automated mode.
	MinConsistentSources int
}

// AnalyzeRequest holds everything the content-analysis pass needs: the
// product identity, the full catalog as extraction hints, and the sources
// discovered by the initial search. Sources are reused, never re-fetched.
type AnalyzeRequest struct {
	ArticleNumber string
	ProductName   string
	Catalog       types.Catalog
	Sources       []types.Source
	AIOptions     types.AIConfig
}

// Searcher runs the initial broad search.
type Searcher interface {
	Search(ctx context.Context, req SearchRequest) (types.Result, error)
}

// Analyzer runs the focused content-analysis pass.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (types.Result, error)
}

// Session holds the active result set, the selected product index, and
// the lifecycle state. All methods are safe for concurrent use.
type Session struct {
	searcher Searcher
	analyzer Analyzer
	catalog  types.Catalog
	progress io.Writer

	mu        sync.Mutex
	result    *types.Result
	active    int
	state     State
	analyzing bool
}

// NewSession creates an idle session. Progress notes go to w; pass
// io.Discard to silence them.
func NewSession(searcher Searcher, analyzer Analyzer, catalog types.Catalog, w io.Writer) *Session {
	if w == nil {
		w = io.Discard
	}
	return &Session{
		searcher: searcher,
		analyzer: analyzer,
		catalog:  catalog,
		progress: w,
		active:   -1,
		state:    StateIdle,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns a copy of the active result.
func (s *Session) Result() (types.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return types.Result{}, false
	}
	return *s.result, true
}

// ActiveIndex returns the selected product index, or -1 when no result
// is held.
func (s *Session) ActiveIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// ActiveProduct returns the currently selected product.
func (s *Session) ActiveProduct() (types.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil || s.active < 0 || s.active >= len(s.result.Products) {
		return types.Product{}, false
	}
	return s.result.Products[s.active], true
}

// Search runs the initial broad search and installs the outcome as the
// active result. A response with no products degrades to the idle state
// rather than an error; a transport failure leaves the previous result
// in place and parks the session in StateFailed.
func (s *Session) Search(ctx context.Context, req SearchRequest) (types.Result, error) {
	s.mu.Lock()
	s.state = StateSearching
	s.mu.Unlock()

	res, err := s.searcher.Search(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateFailed
		return types.Result{}, fmt.Errorf("search failed: %w", err)
	}

	if res.Empty() {
		fmt.Fprintln(s.progress, "search returned no products")
		s.result = nil
		s.active = -1
		s.state = StateIdle
		return types.Result{}, nil
	}

	s.result = &res
	s.active = 0
	if IsPartial(&res) {
		s.state = StatePartial
	} else {
		s.state = StateComplete
	}
	return res, nil
}

// Analyze triggers the content-analysis pass for the active product. It
// reuses the product identity, the full catalog, and the sources captured
// by the initial search. On success the finalized result replaces the
// partial one; if the response omits sources, the captured ones are
// re-injected so citations survive the hand-off. On failure the prior
// result stays active. Only one analysis may be in flight at a time;
// a second trigger returns ErrAnalysisInFlight.
func (s *Session) Analyze(ctx context.Context, ai types.AIConfig) (types.Result, error) {
	s.mu.Lock()
	if s.result == nil || s.active < 0 || s.active >= len(s.result.Products) {
		s.mu.Unlock()
		return types.Result{}, ErrNoActiveResult
	}
	if s.analyzing {
		s.mu.Unlock()
		return types.Result{}, ErrAnalysisInFlight
	}
	product := s.result.Products[s.active]
	originalSources := append([]types.Source(nil), product.Meta.Sources...)
	s.analyzing = true
	s.state = StateAnalyzing
	s.mu.Unlock()

	req := AnalyzeRequest{
		ArticleNumber: product.ArticleNumber,
		ProductName:   product.ProductName,
		Catalog:       s.catalog,
		Sources:       originalSources,
		AIOptions:     ai,
	}

	res, err := s.analyzer.Analyze(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzing = false

	if err != nil {
		s.state = StateFailed
		return types.Result{}, fmt.Errorf("analysis failed: %w", err)
	}
	if res.Empty() {
		s.state = StateFailed
		return types.Result{}, fmt.Errorf("analysis failed: response contained no products")
	}

	res = preserveSources(res, originalSources)

	s.result = &res
	s.active = clampIndex(s.active, len(res.Products))
	s.state = StateComplete
	return res, nil
}

// preserveSources re-injects the captured sources when the analysis
// response's first product carries none. The analysis step may
// legitimately return only extracted fields; citations must still
// survive the hand-off. The input result is not mutated.
func preserveSources(res types.Result, original []types.Source) types.Result {
	if len(original) == 0 || len(res.Products) == 0 {
		return res
	}
	if len(res.Products[0].Meta.Sources) > 0 {
		return res
	}

	products := append([]types.Product(nil), res.Products...)
	products[0].Meta.Sources = original
	res.Products = products
	return res
}

// Partial status-message markers emitted by two-phase providers during
// the source-discovery step.
var partialMarkers = []string{
	"step 1 of 2",
	"schritt 1 von 2",
}

// IsPartial reports whether a result is a partial from the initial search
// phase. The typed SearchStatus field is authoritative when set; the
// remaining checks are the legacy heuristic kept for payloads from older
// providers. Any one condition being true classifies the result as
// partial:
//
//  1. the result's search status is "searching";
//  2. the status message carries a source-discovery step marker;
//  3. the first product is flagged search-pending;
//  4. the first product has sources but not a single extracted property.
func IsPartial(res *types.Result) bool {
	if res == nil || len(res.Products) == 0 {
		return false
	}
	if res.SearchStatus == types.StatusSearching {
		return true
	}
	msg := strings.ToLower(res.StatusMessage)
	for _, marker := range partialMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	first := res.Products[0]
	if first.Meta.SearchPending {
		return true
	}
	if len(first.Properties) == 0 && len(first.Meta.Sources) > 0 {
		return true
	}
	return false
}

// clampIndex clamps i into [0, length-1]; -1 when the list is empty.
func clampIndex(i, length int) int {
	if length == 0 {
		return -1
	}
	if i < 0 {
		return 0
	}
	if i >= length {
		return length - 1
	}
	return i
}
