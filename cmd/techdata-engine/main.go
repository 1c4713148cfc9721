// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the techdata-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/techdata-engine/internal/catalog"
	"github.com/pdiddy/techdata-engine/internal/secrets"
	"github.com/pdiddy/techdata-engine/internal/store"
	"github.com/pdiddy/techdata-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// keyEnablement records which API keys were found in .secrets/ at startup.
// Commands consult it to warn early instead of failing mid-request.
var keyEnablement secrets.Enablement

// rootCmd is the base command for the techdata-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "techdata-engine",
	Short: "Aggregate and analyze product technical data from multiple sources",
	Long: `techdata-engine collects technical product data in two phases: a broad
search discovers candidate products and their sources, and a focused
content-analysis pass extracts catalog properties from those same sources.

The session (products, selection, discovered sources) persists between
invocations, so search and analyze can run as separate commands. Use
products, sources, and export to inspect and publish the result set.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		keyEnablement = secrets.NewEnablement(s)
		if keys := keyEnablement.Keys(); len(keys) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./techdata-engine.yaml or ~/.config/techdata-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("techdata-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "techdata-engine"))
		}
	}

	viper.SetEnvPrefix("TECHDATA_ENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("search.timeout", 30*time.Second)
	viper.SetDefault("search.user_agent", "techdata-engine/"+version)
	viper.SetDefault("search.method", string(types.MethodAuto))
	viper.SetDefault("search.min_consistent_sources", 2)
	viper.SetDefault("analysis.timeout", 2*time.Minute)
	viper.SetDefault("analysis.user_agent", "techdata-engine/"+version)
	viper.SetDefault("analysis.max_retries", 3)
	viper.SetDefault("store.data_dir", "data")
	viper.SetDefault("export.output_dir", "output")
	viper.SetDefault("export.format", string(types.ExportCSV))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig assembles the stage configurations from viper.
func engineConfig() types.EngineConfig {
	return types.EngineConfig{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
			},
			Endpoint:             viper.GetString("search.endpoint"),
			Method:               types.SearchMethod(viper.GetString("search.method")),
			MinConsistentSources: viper.GetInt("search.min_consistent_sources"),
		},
		Analysis: types.AnalysisConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("analysis.timeout"),
				UserAgent: viper.GetString("analysis.user_agent"),
			},
			AIConfig: types.AIConfig{
				Model:      viper.GetString("analysis.model"),
				MaxRetries: viper.GetInt("analysis.max_retries"),
			},
			Endpoint: viper.GetString("analysis.endpoint"),
		},
		Catalog: types.CatalogConfig{Path: viper.GetString("catalog.path")},
		Store:   types.StoreConfig{DataDir: viper.GetString("store.data_dir")},
		Export: types.ExportConfig{
			OutputDir: viper.GetString("export.output_dir"),
			Format:    types.ExportFormat(viper.GetString("export.format")),
		},
	}
}

// openStore opens the session database for the configured data directory.
func openStore(cfg types.EngineConfig) (*store.Store, error) {
	return store.NewStore(cfg.Store)
}

// loadCatalog loads the configured property catalog, falling back to the
// built-in default when no path is configured.
func loadCatalog(cfg types.EngineConfig) (types.Catalog, error) {
	return catalog.Load(cfg.Catalog)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
