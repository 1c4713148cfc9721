// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/techdata-engine/internal/provider"
	"github.com/pdiddy/techdata-engine/internal/workflow"
	"github.com/pdiddy/techdata-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run the initial broad search for products and their sources",
	Long: `Search queries the search provider for products matching a free-text
query, a product page URL, a datasheet PDF, or a manufacturer domain.
The outcome replaces the current session: it may already be complete, or
a partial result whose sources feed a later analyze run.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	if query == "" {
		return fmt.Errorf("query required: pass it as an argument or via --query")
	}

	cfg := engineConfig()
	if method, _ := cmd.Flags().GetString("method"); method != "" {
		cfg.Search.Method = types.SearchMethod(method)
	}
	if cmd.Flags().Changed("min-consistent-sources") {
		cfg.Search.MinConsistentSources, _ = cmd.Flags().GetInt("min-consistent-sources")
	}
	if cfg.Search.Endpoint == "" {
		return fmt.Errorf("search endpoint not configured: set search.endpoint in the config file or TECHDATA_ENGINE_SEARCH_ENDPOINT")
	}
	if !keyEnablement.Configured("search-api-key") {
		fmt.Fprintln(os.Stderr, "warning: search-api-key not found in .secrets/; the provider may reject the request")
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	client := provider.NewClient(cfg.Search, cfg.Analysis, nil)
	session := workflow.NewSession(client, client, cat, os.Stderr)

	req := workflow.SearchRequest{
		Query:  query,
		Method: cfg.Search.Method,
	}
	if cfg.Search.Method == types.MethodAuto {
		req.MinConsistentSources = cfg.Search.MinConsistentSources
	}

	res, err := session.Search(context.Background(), req)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.AppendHistory(context.Background(), query, req.Method, len(res.Products)); err != nil {
		return err
	}

	if snapshot, active, ok := session.Snapshot(); ok {
		if err := st.SaveSession(context.Background(), snapshot, active); err != nil {
			return err
		}
	} else {
		if err := st.ClearSession(context.Background()); err != nil {
			return err
		}
		fmt.Println("No products found.")
		return nil
	}

	printProducts(res, session.ActiveIndex())
	if session.State() == workflow.StatePartial {
		fmt.Println("\nPartial result: sources discovered, properties pending. Run `techdata-engine analyze` to extract them.")
	}
	return nil
}

func init() {
	searchCmd.Flags().String("query", "", "product query: free text, URL, PDF reference, or domain")
	searchCmd.Flags().String("method", "", "search method: auto, url, pdf, or domain (default from config)")
	searchCmd.Flags().Int("min-consistent-sources", 2, "cross-source agreement threshold for automated mode")

	rootCmd.AddCommand(searchCmd)
}
