// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reconcile merges a product's raw extracted properties with the
// property catalog into a complete, insertion-ordered property set.
package reconcile

import "github.com/pdiddy/techdata-engine/pkg/types"

// Identity fields emitted ahead of the catalog walk. A catalog that also
// defines either name is skipped during the walk rather than duplicated.
const (
	FieldArticleNumber = "Article Number"
	FieldProductName   = "Product Name"
)

// NotFoundValue is the placeholder for catalog properties the extraction
// did not report.
const NotFoundValue = "Not found"

// PropertySet is an insertion-ordered property mapping. Downstream
// consumers (display, export) rely on insertion order for column order;
// it is never re-derived by sorting.
type PropertySet struct {
	names  []string
	byName map[string]types.PropertyValue
}

// Len returns the number of properties in the set.
func (s *PropertySet) Len() int {
	return len(s.names)
}

// Names returns the property names in insertion order.
func (s *PropertySet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Get returns the property with the given name.
func (s *PropertySet) Get(name string) (types.PropertyValue, bool) {
	v, ok := s.byName[name]
	return v, ok
}

// Values returns the property values in insertion order.
func (s *PropertySet) Values() []types.PropertyValue {
	out := make([]types.PropertyValue, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.byName[name])
	}
	return out
}

// add appends a property. Last write wins for a repeated name, but the
// original position is kept.
func (s *PropertySet) add(v types.PropertyValue) {
	if s.byName == nil {
		s.byName = make(map[string]types.PropertyValue)
	}
	if _, ok := s.byName[v.Name]; !ok {
		s.names = append(s.names, v.Name)
	}
	s.byName[v.Name] = v
}

// Reconcile merges the product's raw properties against the catalog.
//
// The two identity fields come first, filled from the product record with
// maximum confidence: identity values originate from user input or the
// provider's product match, never from per-property extraction. The
// catalog is then walked in its defined order; properties the extraction
// reported are copied verbatim, absent ones materialize as a NotFoundValue
// placeholder with confidence 0. A product with a nil property map is
// handled the same as one with no matching entries.
func Reconcile(p types.Product, catalog types.Catalog) *PropertySet {
	set := &PropertySet{}
	identityTrue := true

	set.add(types.PropertyValue{
		Name:       FieldArticleNumber,
		Value:      p.ArticleNumber,
		Confidence: 100,
		Consistent: &identityTrue,
	})
	set.add(types.PropertyValue{
		Name:       FieldProductName,
		Value:      p.ProductName,
		Confidence: 100,
		Consistent: &identityTrue,
	})

	for _, def := range catalog {
		if def.Name == FieldArticleNumber || def.Name == FieldProductName {
			continue
		}
		if v, ok := p.Properties[def.Name]; ok {
			v.Name = def.Name
			set.add(v)
			continue
		}
		set.add(types.PropertyValue{
			Name:       def.Name,
			Value:      NotFoundValue,
			Confidence: 0,
		})
	}

	return set
}
