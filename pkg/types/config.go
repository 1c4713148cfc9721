// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "techdata-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for stages that call an AI extraction API.
type AIConfig struct {
	// Model is the AI model identifier used for content analysis.
	Model string `json:"model" yaml:"model"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// SearchConfig holds settings for the initial broad-search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the base URL of the search provider.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Method selects how products are identified: auto, url, pdf, or domain.
	Method SearchMethod `json:"method" yaml:"method"`

	// MinConsistentSources is the cross-source agreement threshold used in
	// automated mode (default 2).
	MinConsistentSources int `json:"min_consistent_sources" yaml:"min_consistent_sources"`
}

// AnalysisConfig holds settings for the content-analysis stage.
type AnalysisConfig struct {
	HTTPConfig `yaml:",inline"`
	AIConfig   `yaml:",inline"`

	// Endpoint is the base URL of the analysis provider.
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// CatalogConfig holds settings for the property catalog adapter.
type CatalogConfig struct {
	// Path is the catalog YAML file. Empty selects the built-in default.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// StoreConfig holds settings for session persistence.
type StoreConfig struct {
	// DataDir is the directory holding techdata.db (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ExportFormat selects the export artifact format.
type ExportFormat string

const (
	ExportCSV      ExportFormat = "csv"
	ExportJSON     ExportFormat = "json"
	ExportYAML     ExportFormat = "yaml"
	ExportMarkdown ExportFormat = "markdown"
)

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// OutputDir is the directory exported artifacts are written to
	// (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Format selects the artifact format: csv, json, yaml, or markdown.
	Format ExportFormat `json:"format" yaml:"format"`
}

// EngineConfig groups all stage configurations.
type EngineConfig struct {
	Search   SearchConfig   `json:"search" yaml:"search"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Catalog  CatalogConfig  `json:"catalog" yaml:"catalog"`
	Store    StoreConfig    `json:"store" yaml:"store"`
	Export   ExportConfig   `json:"export" yaml:"export"`
}
