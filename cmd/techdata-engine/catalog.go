// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the effective property catalog",
	Long: `Catalog prints the property catalog the analysis and export stages work
against: either the built-in default or the file named by catalog.path.`,
	RunE: runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(engineConfig())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cat)
	}

	fmt.Printf("%-10s  %-26s  %-10s  %s\n", "ID", "Name", "Format", "Description")
	fmt.Println(strings.Repeat("-", 80))
	for _, def := range cat {
		fmt.Printf("%-10s  %-26s  %-10s  %s\n", def.ID, def.Name, def.Format, def.Description)
	}
	fmt.Printf("\n%d properties\n", len(cat))
	return nil
}

func init() {
	catalogCmd.Flags().Bool("json", false, "output the catalog as JSON")

	rootCmd.AddCommand(catalogCmd)
}
