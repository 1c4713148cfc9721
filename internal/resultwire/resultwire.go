// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resultwire decodes provider payloads into typed results.
//
// Search and analysis providers speak a camelCase JSON dialect in which
// result-level data rides inside the property map under reserved
// double-underscore keys. This package is the only place that dialect is
// visible: decoding lifts the reserved keys into Product.Meta, drops any
// other reserved entries, and mints product IDs when the provider omits
// them, so the rest of the engine works on clean typed values.
package resultwire

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/techdata-engine/pkg/types"
)

// Reserved property keys of the legacy wire dialect.
const (
	// MetaSourcesKey carries the consolidated source list for the whole
	// result inside the property map.
	MetaSourcesKey = "__meta_sources"

	// SearchStatusKey marks a placeholder product from the initial
	// search phase.
	SearchStatusKey = "__search_status"

	// reservedPrefix guards against reserved keys added by newer
	// providers; anything with this prefix stays out of the property map.
	reservedPrefix = "__"
)

// wireResult mirrors the provider payload.
type wireResult struct {
	Products             []wireProduct         `json:"products"`
	SearchMethod         string                `json:"searchMethod"`
	SearchStatus         string                `json:"searchStatus"`
	StatusMessage        string                `json:"statusMessage"`
	MinConsistentSources int                   `json:"minConsistentSources"`
	RawContent           []wireRawContentEntry `json:"rawContent"`
}

type wireProduct struct {
	ID            flexID                  `json:"id"`
	ArticleNumber string                  `json:"articleNumber"`
	ProductName   string                  `json:"productName"`
	Properties    map[string]wireProperty `json:"properties"`
}

// flexID accepts a string or numeric product ID; providers send both.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = flexID(v)
		return nil
	}
	*f = flexID(s)
	return nil
}

type wireProperty struct {
	Name         string       `json:"name"`
	Value        string       `json:"value"`
	Sources      []wireSource `json:"sources"`
	Confidence   int          `json:"confidence"`
	IsConsistent *bool        `json:"isConsistent"`
	SourceCount  int          `json:"sourceCount"`
}

type wireSource struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	ContentLength int    `json:"contentLength"`
}

type wireRawContentEntry struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	ContentLength int    `json:"contentLength"`
}

// Decode parses a provider payload into a typed Result. A payload whose
// products field is missing or empty decodes to an empty Result rather
// than an error; only malformed JSON fails.
func Decode(data []byte) (types.Result, error) {
	var w wireResult
	if err := json.Unmarshal(data, &w); err != nil {
		return types.Result{}, fmt.Errorf("decoding provider payload: %w", err)
	}

	res := types.Result{
		SearchMethod:         types.SearchMethod(w.SearchMethod),
		SearchStatus:         types.SearchStatus(w.SearchStatus),
		StatusMessage:        w.StatusMessage,
		MinConsistentSources: w.MinConsistentSources,
	}

	for _, rc := range w.RawContent {
		length := rc.ContentLength
		if length == 0 {
			length = len(rc.Content)
		}
		res.RawContent = append(res.RawContent, types.RawContentEntry{
			URL:           rc.URL,
			Title:         rc.Title,
			Content:       rc.Content,
			ContentLength: length,
		})
	}

	for _, wp := range w.Products {
		res.Products = append(res.Products, liftProduct(wp))
	}

	return res, nil
}

// liftProduct converts one wire product, moving reserved keys into Meta.
func liftProduct(wp wireProduct) types.Product {
	p := types.Product{
		ID:            string(wp.ID),
		ArticleNumber: wp.ArticleNumber,
		ProductName:   wp.ProductName,
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	for name, prop := range wp.Properties {
		switch {
		case name == MetaSourcesKey:
			p.Meta.Sources = convertSources(prop.Sources)
		case name == SearchStatusKey:
			p.Meta.SearchPending = true
		case strings.HasPrefix(name, reservedPrefix):
			// Unknown reserved key: drop it.
		default:
			if p.Properties == nil {
				p.Properties = make(map[string]types.PropertyValue, len(wp.Properties))
			}
			p.Properties[name] = convertProperty(name, prop)
		}
	}

	return p
}

func convertProperty(name string, prop wireProperty) types.PropertyValue {
	if prop.Name == "" {
		prop.Name = name
	}
	return types.PropertyValue{
		Name:           prop.Name,
		Value:          prop.Value,
		Sources:        convertSources(prop.Sources),
		Confidence:     prop.Confidence,
		Consistent:     prop.IsConsistent,
		AgreementCount: prop.SourceCount,
	}
}

func convertSources(sources []wireSource) []types.Source {
	if len(sources) == 0 {
		return nil
	}
	out := make([]types.Source, len(sources))
	for i, s := range sources {
		out[i] = types.Source{
			URL:           s.URL,
			Title:         s.Title,
			ContentLength: s.ContentLength,
		}
	}
	return out
}
