// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PropertyDefinition is one entry in the property catalog.
type PropertyDefinition struct {
	// ID is the catalog-assigned identifier, stable across renames.
	ID string `json:"id" yaml:"id"`

	// Name is the display name and the key products report values under.
	Name string `json:"name" yaml:"name"`

	// Description explains what the property captures. Optional.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Format is the expected value format (e.g. "mm", "kg", "IP class").
	// Optional; passed to the analysis provider as an extraction hint.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Catalog is the ordered list of property definitions. The order is the
// display and export column order; the engine reads the catalog but never
// mutates it.
type Catalog []PropertyDefinition

// Names returns the property names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, def := range c {
		names[i] = def.Name
	}
	return names
}

// Contains reports whether the catalog defines a property with the name.
func (c Catalog) Contains(name string) bool {
	for _, def := range c {
		if def.Name == name {
			return true
		}
	}
	return false
}
