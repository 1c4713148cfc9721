// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider implements the workflow's Searcher and Analyzer
// interfaces against the HTTP extraction endpoints. The endpoints are
// black boxes that speak the resultwire dialect; all reconciliation
// happens downstream of this package.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/techdata-engine/internal/httputil"
	"github.com/pdiddy/techdata-engine/internal/resultwire"
	"github.com/pdiddy/techdata-engine/internal/workflow"
	"github.com/pdiddy/techdata-engine/pkg/types"
)

// maxResponseBody caps how much of a provider response is read; analysis
// payloads with raw content snapshots run large but not this large.
const maxResponseBody = 32 << 20

// Client talks to the search and analysis endpoints.
type Client struct {
	search   types.SearchConfig
	analysis types.AnalysisConfig
	http     *http.Client
}

// NewClient builds a provider client. A nil httpClient selects a default
// client with the search stage's timeout.
func NewClient(search types.SearchConfig, analysis types.AnalysisConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: search.Timeout}
	}
	return &Client{search: search, analysis: analysis, http: httpClient}
}

// searchPayload is the search request body.
type searchPayload struct {
	Query                string `json:"query"`
	SearchMethod         string `json:"searchMethod"`
	MinConsistentSources int    `json:"minConsistentSources,omitempty"`
}

// Search runs the initial broad search. The response may be a partial
// result carrying discovered sources and placeholder properties.
func (c *Client) Search(ctx context.Context, req workflow.SearchRequest) (types.Result, error) {
	payload := searchPayload{
		Query:                req.Query,
		SearchMethod:         string(req.Method),
		MinConsistentSources: req.MinConsistentSources,
	}
	return c.post(ctx, c.search.Endpoint+"/search", payload, c.search.UserAgent, 0)
}

// analyzePayload is the analysis request body.
type analyzePayload struct {
	ArticleNumber string           `json:"articleNumber"`
	ProductName   string           `json:"productName"`
	Properties    []catalogEntry   `json:"properties"`
	Sources       []sourceRef      `json:"sources"`
	AIOptions     analyzeAIOptions `json:"aiOptions"`
}

type catalogEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Format      string `json:"format,omitempty"`
}

type sourceRef struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

type analyzeAIOptions struct {
	Model string `json:"model,omitempty"`
}

// Analyze runs the focused content-analysis pass over the sources the
// search already discovered.
func (c *Client) Analyze(ctx context.Context, req workflow.AnalyzeRequest) (types.Result, error) {
	payload := analyzePayload{
		ArticleNumber: req.ArticleNumber,
		ProductName:   req.ProductName,
		AIOptions:     analyzeAIOptions{Model: req.AIOptions.Model},
	}
	for _, def := range req.Catalog {
		payload.Properties = append(payload.Properties, catalogEntry{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Format:      def.Format,
		})
	}
	for _, s := range req.Sources {
		payload.Sources = append(payload.Sources, sourceRef{URL: s.URL, Title: s.Title})
	}

	return c.post(ctx, c.analysis.Endpoint+"/analyze", payload, c.analysis.UserAgent, req.AIOptions.MaxRetries)
}

func (c *Client) post(ctx context.Context, url string, payload any, userAgent string, maxRetries int) (types.Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return types.Result{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return types.Result{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, maxRetries)
	if err != nil {
		return types.Result{}, fmt.Errorf("calling %s: %w", url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return types.Result{}, fmt.Errorf("reading response from %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		return types.Result{}, fmt.Errorf("%s returned HTTP %d", url, resp.StatusCode)
	}

	return resultwire.Decode(data)
}
