// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/techdata-engine/internal/provider"
	"github.com/pdiddy/techdata-engine/internal/workflow"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run content analysis over the sources found by the last search",
	Long: `Analyze triggers the focused content-analysis pass for the selected
product. It reuses the sources discovered by the initial search together
with the full property catalog as extraction hints; nothing is
re-fetched. The finalized result replaces the partial one in the
session.`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.Analysis.Model = model
	}
	if cmd.Flags().Changed("max-retries") {
		cfg.Analysis.MaxRetries, _ = cmd.Flags().GetInt("max-retries")
	}
	if cfg.Analysis.Endpoint == "" {
		return fmt.Errorf("analysis endpoint not configured: set analysis.endpoint in the config file or TECHDATA_ENGINE_ANALYSIS_ENDPOINT")
	}
	if !keyEnablement.Configured("analysis-api-key") {
		fmt.Fprintln(os.Stderr, "warning: analysis-api-key not found in .secrets/; the provider may reject the request")
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	saved, active, ok, err := st.LoadSession(context.Background())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no active session: run `techdata-engine search` first")
	}

	client := provider.NewClient(cfg.Search, cfg.Analysis, nil)
	session := workflow.NewSession(client, client, cat, os.Stderr)
	session.Restore(saved, active)

	res, err := session.Analyze(context.Background(), cfg.Analysis.AIConfig)
	if err != nil {
		if errors.Is(err, workflow.ErrNoActiveResult) {
			return fmt.Errorf("no product selected: run `techdata-engine search` first")
		}
		return err
	}

	if snapshot, idx, ok := session.Snapshot(); ok {
		if err := st.SaveSession(context.Background(), snapshot, idx); err != nil {
			return err
		}
	}

	printProducts(res, session.ActiveIndex())
	return nil
}

func init() {
	analyzeCmd.Flags().String("model", "", "AI model for content analysis (default from config)")
	analyzeCmd.Flags().Int("max-retries", 3, "retry attempts for failed analysis calls")

	rootCmd.AddCommand(analyzeCmd)
}
