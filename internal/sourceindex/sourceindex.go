// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sourceindex deduplicates and windows source citations.
//
// Identity is the normalized URL: lowercased scheme and host, a leading
// "www." removed, the trailing slash of the path removed, the query string
// kept, the fragment dropped. Query strings stay because they routinely
// select distinct product pages (?sku=, ?variant=); fragments never do.
package sourceindex

import (
	"net/url"
	"strings"

	"github.com/pdiddy/techdata-engine/pkg/types"
)

// DefaultTruncateLimit is the number of sources shown before the list
// collapses behind a "show all" affordance.
const DefaultTruncateLimit = 4

// Normalize returns the identity key for a source URL. Unparseable URLs
// normalize to their trimmed raw form so they still dedup exactly.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")

	path := strings.TrimSuffix(u.Path, "/")

	var b strings.Builder
	b.WriteString(strings.ToLower(u.Scheme))
	b.WriteString("://")
	b.WriteString(host)
	b.WriteString(path)
	if u.RawQuery != "" {
		b.WriteString("?")
		b.WriteString(u.RawQuery)
	}
	return b.String()
}

// Register deduplicates sources by normalized URL, preserving first-seen
// order. Later duplicates fill in fields the first occurrence was missing:
// an empty title is taken from the duplicate, and the larger content
// length wins. It also reports how many duplicates were removed.
func Register(sources []types.Source) ([]types.Source, int) {
	seen := make(map[string]int, len(sources)) // identity key → index in deduped
	var deduped []types.Source
	removed := 0

	for _, s := range sources {
		if s.URL == "" {
			continue
		}
		key := Normalize(s.URL)
		if idx, ok := seen[key]; ok {
			mergeInto(&deduped[idx], s)
			removed++
			continue
		}
		seen[key] = len(deduped)
		deduped = append(deduped, s)
	}

	return deduped, removed
}

// mergeInto fills empty fields of dst from src.
func mergeInto(dst *types.Source, src types.Source) {
	if dst.Title == "" && src.Title != "" {
		dst.Title = src.Title
	}
	if src.ContentLength > dst.ContentLength {
		dst.ContentLength = src.ContentLength
	}
}

// Window is a truncated view over a source list.
type Window struct {
	// Shown is the visible prefix of the list.
	Shown []types.Source

	// HasMore reports whether entries were held back.
	HasMore bool
}

// Truncate returns the first limit sources and whether more remain. A
// non-positive limit selects DefaultTruncateLimit.
func Truncate(sources []types.Source, limit int) Window {
	if limit <= 0 {
		limit = DefaultTruncateLimit
	}
	if len(sources) <= limit {
		return Window{Shown: sources}
	}
	return Window{Shown: sources[:limit], HasMore: true}
}
