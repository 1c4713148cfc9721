// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import "github.com/pdiddy/techdata-engine/pkg/types"

// Select makes the product at index the active one. Out-of-range indices
// clamp into the valid range; selecting on an empty session is a no-op.
func (s *Session) Select(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return
	}
	s.active = clampIndex(index, len(s.result.Products))
}

// Delete removes the product at index. Deleting the last remaining
// product clears the whole result and returns the session to idle.
// Otherwise the product list is replaced with a copy that omits the
// entry, and the active index is renormalized: a removed entry before
// the active one shifts the index down so it keeps pointing at the same
// logical product; removing the active entry itself selects the previous
// one. Out-of-range indices are a no-op.
func (s *Session) Delete(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil || index < 0 || index >= len(s.result.Products) {
		return
	}

	if len(s.result.Products) == 1 {
		s.result = nil
		s.active = -1
		s.state = StateIdle
		return
	}

	products := make([]types.Product, 0, len(s.result.Products)-1)
	products = append(products, s.result.Products[:index]...)
	products = append(products, s.result.Products[index+1:]...)

	next := *s.result
	next.Products = products
	s.result = &next

	switch {
	case index < s.active:
		s.active--
	case index == s.active:
		s.active = clampIndex(index-1, len(products))
	}
	s.active = clampIndex(s.active, len(products))
}

// Clear discards the active result and returns the session to idle.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = nil
	s.active = -1
	s.state = StateIdle
}

// Snapshot returns the held result and active index for persistence.
func (s *Session) Snapshot() (types.Result, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return types.Result{}, -1, false
	}
	return *s.result, s.active, true
}

// Restore installs a persisted result and selection, e.g. when a later
// CLI invocation resumes the session. The index is clamped; an empty
// result restores to idle.
func (s *Session) Restore(res types.Result, active int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if res.Empty() {
		s.result = nil
		s.active = -1
		s.state = StateIdle
		return
	}
	s.result = &res
	s.active = clampIndex(active, len(res.Products))
	if IsPartial(&res) {
		s.state = StatePartial
	} else {
		s.state = StateComplete
	}
}
