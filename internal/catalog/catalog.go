// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog supplies the ordered property catalog. The catalog is
// external source of truth for display and export column order; the
// engine reads it and never mutates it.
package catalog

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/techdata-engine/pkg/types"
)

// catalogFile is the on-disk representation of a property catalog.
type catalogFile struct {
	Properties []types.PropertyDefinition `yaml:"properties"`
}

// Load reads the catalog from a YAML file, preserving file order. An
// empty path returns the built-in default catalog.
func Load(cfg types.CatalogConfig) (types.Catalog, error) {
	if cfg.Path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", cfg.Path, err)
	}
	if len(f.Properties) == 0 {
		return nil, fmt.Errorf("catalog file %s defines no properties", cfg.Path)
	}

	seen := make(map[string]bool, len(f.Properties))
	for i, def := range f.Properties {
		if def.Name == "" {
			return nil, fmt.Errorf("catalog file %s: property %d has no name", cfg.Path, i)
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("catalog file %s: duplicate property %q", cfg.Path, def.Name)
		}
		seen[def.Name] = true
	}

	return types.Catalog(f.Properties), nil
}

// Default returns the built-in catalog of common technical datasheet
// properties, in display order.
func Default() types.Catalog {
	return types.Catalog{
		{ID: "manufacturer", Name: "Manufacturer"},
		{ID: "weight", Name: "Weight", Format: "kg"},
		{ID: "width", Name: "Width", Format: "mm"},
		{ID: "height", Name: "Height", Format: "mm"},
		{ID: "depth", Name: "Depth", Format: "mm"},
		{ID: "material", Name: "Material"},
		{ID: "color", Name: "Color"},
		{ID: "protection-class", Name: "Protection Class", Format: "IP class"},
		{ID: "operating-voltage", Name: "Operating Voltage", Format: "V"},
		{ID: "power-consumption", Name: "Power Consumption", Format: "W"},
		{ID: "operating-temperature", Name: "Operating Temperature", Format: "°C range"},
		{ID: "certifications", Name: "Certifications"},
		{ID: "country-of-origin", Name: "Country of Origin"},
		{ID: "warranty", Name: "Warranty"},
	}
}
