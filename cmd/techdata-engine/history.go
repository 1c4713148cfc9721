// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past searches, newest first",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	st, err := openStore(engineConfig())
	if err != nil {
		return err
	}
	defer st.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := st.History(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No search history.")
		return nil
	}

	fmt.Printf("%-20s  %-8s  %-8s  %s\n", "When", "Method", "Products", "Query")
	fmt.Println(strings.Repeat("-", 80))
	for _, e := range entries {
		fmt.Printf("%-20s  %-8s  %-8d  %s\n",
			e.CreatedAt.Local().Format(time.DateTime), e.Method, e.ProductCount, clip(e.Query, 40))
	}
	return nil
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(engineConfig())
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ClearSession(context.Background()); err != nil {
			return err
		}
		fmt.Println("Session cleared.")
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum history entries to show")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(clearCmd)
}
