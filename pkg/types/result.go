// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the techdata-engine
// result aggregation pipeline: search/analysis results, candidate products,
// reconciled property values, source citations, and stage configuration.
package types

// SearchMethod identifies how a product search was initiated.
type SearchMethod string

const (
	MethodAuto   SearchMethod = "auto"
	MethodURL    SearchMethod = "url"
	MethodPDF    SearchMethod = "pdf"
	MethodDomain SearchMethod = "domain"
)

// SearchStatus marks the phase a result belongs to. Providers that support
// two-phase extraction return "searching" from the initial broad search and
// "complete" from the content-analysis pass.
type SearchStatus string

const (
	StatusSearching SearchStatus = "searching"
	StatusAnalyzing SearchStatus = "analyzing"
	StatusComplete  SearchStatus = "complete"
)

// Source is a citation attached to an extracted value. Identity is the
// normalized URL; two sources with the same normalized URL are the same
// citation.
type Source struct {
	// URL locates the page the value was extracted from.
	URL string `json:"url" yaml:"url"`

	// Title is the page title, when the provider captured one.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// ContentLength is the size in bytes of the scraped page content,
	// when retained for inspection. Zero when unknown.
	ContentLength int `json:"content_length,omitempty" yaml:"content_length,omitempty"`
}

// PropertyValue is one reconciled property of a product.
type PropertyValue struct {
	// Name is the property name as defined by the catalog.
	Name string `json:"name" yaml:"name"`

	// Value is the extracted value, or the "Not found" placeholder.
	Value string `json:"value" yaml:"value"`

	// Sources lists the citations this value was extracted from.
	Sources []Source `json:"sources,omitempty" yaml:"sources,omitempty"`

	// Confidence is an integer between 0 and 100. 100 marks a value taken
	// directly from user input rather than extraction.
	Confidence int `json:"confidence" yaml:"confidence"`

	// Consistent reports independent-source agreement. It is set only in
	// automated multi-source mode; nil means agreement was not evaluated.
	Consistent *bool `json:"is_consistent,omitempty" yaml:"is_consistent,omitempty"`

	// AgreementCount is the number of independent sources that reported
	// this value, in automated multi-source mode. Zero when not evaluated.
	AgreementCount int `json:"agreement_count,omitempty" yaml:"agreement_count,omitempty"`
}

// ProductMeta carries result-level data that is not a catalog property.
// The legacy wire format smuggled this through reserved property keys
// (__meta_sources, __search_status); the wire decoder lifts those into
// this struct so reconciliation and export never see them.
type ProductMeta struct {
	// Sources is the consolidated citation list for the whole result.
	Sources []Source `json:"sources,omitempty" yaml:"sources,omitempty"`

	// SearchPending marks the product as a placeholder from the initial
	// search phase: sources discovered, properties not yet extracted.
	SearchPending bool `json:"search_pending,omitempty" yaml:"search_pending,omitempty"`
}

// Product is one candidate product within a result set.
type Product struct {
	// ID identifies the product within the result set. Assigned by the
	// provider, or minted locally when the provider omits one.
	ID string `json:"id" yaml:"id"`

	// ArticleNumber is the manufacturer article number. Optional; some
	// search methods identify products by name alone.
	ArticleNumber string `json:"article_number,omitempty" yaml:"article_number,omitempty"`

	// ProductName is the product's display name. Always present.
	ProductName string `json:"product_name" yaml:"product_name"`

	// Properties maps property name to the raw extracted value. The map
	// is unordered; ordering is imposed by reconciliation against the
	// catalog. May be nil for placeholder products.
	Properties map[string]PropertyValue `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Meta holds the consolidated source list and phase markers.
	Meta ProductMeta `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// RawContentEntry is a per-source scraped text snapshot kept for
// inspection and audit. It never feeds reconciliation.
type RawContentEntry struct {
	URL           string `json:"url" yaml:"url"`
	Title         string `json:"title,omitempty" yaml:"title,omitempty"`
	Content       string `json:"content" yaml:"content"`
	ContentLength int    `json:"content_length" yaml:"content_length"`
}

// Result is one search or analysis outcome: one or more candidate
// products plus phase bookkeeping. Results are replaced, never patched:
// each workflow transition produces a new Result value.
type Result struct {
	// Products lists the candidate products, best match first.
	Products []Product `json:"products" yaml:"products"`

	// SearchMethod records how the search was initiated.
	SearchMethod SearchMethod `json:"search_method" yaml:"search_method"`

	// SearchStatus is the provider's phase marker, when it sends one.
	SearchStatus SearchStatus `json:"search_status,omitempty" yaml:"search_status,omitempty"`

	// StatusMessage is a human-readable progress note from the provider.
	StatusMessage string `json:"status_message,omitempty" yaml:"status_message,omitempty"`

	// MinConsistentSources is the agreement threshold the provider used
	// in automated multi-source mode. Zero when not in that mode.
	MinConsistentSources int `json:"min_consistent_sources,omitempty" yaml:"min_consistent_sources,omitempty"`

	// RawContent holds per-source scraped snapshots for inspection.
	RawContent []RawContentEntry `json:"raw_content,omitempty" yaml:"raw_content,omitempty"`
}

// Empty reports whether the result holds no products.
func (r *Result) Empty() bool {
	return r == nil || len(r.Products) == 0
}

// AutomatedMode reports whether the result was produced by automated
// multi-source extraction, which is when cross-source agreement counts
// are meaningful.
func (r *Result) AutomatedMode() bool {
	return r != nil && r.SearchMethod == MethodAuto && r.MinConsistentSources > 0
}
