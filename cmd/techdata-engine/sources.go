// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/techdata-engine/internal/sourceindex"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources [index]",
	Short: "List the discovered sources of a product",
	Long: `Sources lists where a product's data came from, deduplicated by
normalized URL while preserving discovery order. Only the first few
sources are shown; pass --all for the full list. Defaults to the
selected product.`,
	RunE: runSources,
}

func runSources(cmd *cobra.Command, args []string) error {
	session, st, err := restoreSession()
	if err != nil {
		return err
	}
	defer st.Close()

	res, ok := session.Result()
	if !ok {
		return fmt.Errorf("no active session: run `techdata-engine search` first")
	}

	index := session.ActiveIndex()
	if len(args) > 0 {
		index, err = parseIndex(args[0], len(res.Products))
		if err != nil {
			return err
		}
	}
	product := res.Products[index]

	deduped, dropped := sourceindex.Register(product.Meta.Sources)
	if len(deduped) == 0 {
		fmt.Println("No sources recorded for this product.")
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if all, _ := cmd.Flags().GetBool("all"); all {
		limit = len(deduped)
	}
	window := sourceindex.Truncate(deduped, limit)

	fmt.Printf("Sources for %s — %s\n\n", displayArticleNumber(product), product.ProductName)
	for i, s := range window.Shown {
		line := s.URL
		if s.Title != "" {
			line = fmt.Sprintf("%s (%s)", s.Title, s.URL)
		}
		fmt.Printf("  %d. %s", i+1, line)
		if s.ContentLength > 0 {
			fmt.Printf(" [%d bytes]", s.ContentLength)
		}
		fmt.Println()
	}
	if window.HasMore {
		fmt.Printf("  ... and %d more (use --all)\n", len(deduped)-len(window.Shown))
	}

	var notes []string
	if dropped > 0 {
		notes = append(notes, fmt.Sprintf("%d duplicate(s) merged", dropped))
	}
	if len(res.RawContent) > 0 {
		notes = append(notes, fmt.Sprintf("%d raw content snapshot(s) in session", len(res.RawContent)))
	}
	if len(notes) > 0 {
		fmt.Printf("\n%s\n", strings.Join(notes, ", "))
	}
	return nil
}

func init() {
	sourcesCmd.Flags().Bool("all", false, "show every source, not just the first few")
	sourcesCmd.Flags().Int("limit", 0, "maximum sources to show (0 = default)")

	rootCmd.AddCommand(sourcesCmd)
}
