// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resultwire

import (
	"testing"

	"github.com/pdiddy/techdata-engine/pkg/types"
)

func TestDecodeLiftsMetaSources(t *testing.T) {
	payload := []byte(`{
		"products": [{
			"id": 1,
			"articleNumber": "A-100",
			"productName": "Widget",
			"properties": {
				"__meta_sources": {
					"name": "__meta_sources",
					"value": "",
					"sources": [
						{"url": "https://a.example/p", "title": "A"},
						{"url": "https://b.example/p", "title": "B"}
					],
					"confidence": 0
				},
				"Weight": {"name": "Weight", "value": "2 kg", "confidence": 80}
			}
		}],
		"searchMethod": "auto",
		"searchStatus": "complete"
	}`)

	res, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(res.Products) != 1 {
		t.Fatalf("len(products) = %d, want 1", len(res.Products))
	}

	p := res.Products[0]
	if p.ID != "1" {
		t.Errorf("ID = %q, want %q", p.ID, "1")
	}
	if len(p.Meta.Sources) != 2 {
		t.Fatalf("len(meta sources) = %d, want 2", len(p.Meta.Sources))
	}
	if p.Meta.Sources[0].URL != "https://a.example/p" {
		t.Errorf("meta source url = %q", p.Meta.Sources[0].URL)
	}
	if _, ok := p.Properties[MetaSourcesKey]; ok {
		t.Error("reserved key leaked into the property map")
	}
	if got := p.Properties["Weight"].Value; got != "2 kg" {
		t.Errorf("Weight = %q, want %q", got, "2 kg")
	}
}

func TestDecodeLiftsSearchStatus(t *testing.T) {
	payload := []byte(`{
		"products": [{
			"productName": "Widget",
			"properties": {
				"__search_status": {"name": "__search_status", "value": "searching", "confidence": 0}
			}
		}],
		"searchMethod": "auto",
		"searchStatus": "searching",
		"statusMessage": "Quellen gefunden (Schritt 1 von 2)"
	}`)

	res, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	p := res.Products[0]
	if !p.Meta.SearchPending {
		t.Error("SearchPending = false, want true")
	}
	if len(p.Properties) != 0 {
		t.Errorf("len(properties) = %d, want 0", len(p.Properties))
	}
	if p.ID == "" {
		t.Error("missing provider ID should be minted, got empty")
	}
}

func TestDecodeDropsUnknownReservedKeys(t *testing.T) {
	payload := []byte(`{
		"products": [{
			"id": "p1",
			"productName": "Widget",
			"properties": {
				"__future_marker": {"name": "__future_marker", "value": "x", "confidence": 0},
				"Color": {"name": "Color", "value": "red", "confidence": 50}
			}
		}]
	}`)

	res, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	p := res.Products[0]
	if len(p.Properties) != 1 {
		t.Fatalf("len(properties) = %d, want 1", len(p.Properties))
	}
	if _, ok := p.Properties["Color"]; !ok {
		t.Error("Color property missing")
	}
}

func TestDecodeStringAndNumericIDs(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantID  string
	}{
		{"numeric", `{"products":[{"id": 42, "productName": "W"}]}`, "42"},
		{"string", `{"products":[{"id": "abc", "productName": "W"}]}`, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Decode([]byte(tt.payload))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got := res.Products[0].ID; got != tt.wantID {
				t.Errorf("ID = %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestDecodeMalformedPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"missing products", `{"searchMethod": "auto"}`, false},
		{"empty products", `{"products": []}`, false},
		{"null products", `{"products": null}`, false},
		{"broken json", `{"products": [`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Decode([]byte(tt.payload))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !res.Empty() {
				t.Errorf("Empty() = false, want true")
			}
		})
	}
}

func TestDecodeRawContent(t *testing.T) {
	payload := []byte(`{
		"products": [{"id": "p1", "productName": "W"}],
		"rawContent": [
			{"url": "https://a.example", "title": "A", "content": "hello world"},
			{"url": "https://b.example", "content": "x", "contentLength": 9000}
		]
	}`)

	res, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(res.RawContent) != 2 {
		t.Fatalf("len(rawContent) = %d, want 2", len(res.RawContent))
	}
	if res.RawContent[0].ContentLength != len("hello world") {
		t.Errorf("derived content length = %d, want %d", res.RawContent[0].ContentLength, len("hello world"))
	}
	if res.RawContent[1].ContentLength != 9000 {
		t.Errorf("explicit content length = %d, want 9000", res.RawContent[1].ContentLength)
	}
}

func TestAutomatedMode(t *testing.T) {
	auto := types.Result{SearchMethod: types.MethodAuto, MinConsistentSources: 2}
	if !auto.AutomatedMode() {
		t.Error("AutomatedMode() = false for auto search with threshold")
	}
	manual := types.Result{SearchMethod: types.MethodURL, MinConsistentSources: 2}
	if manual.AutomatedMode() {
		t.Error("AutomatedMode() = true for url search")
	}
}
