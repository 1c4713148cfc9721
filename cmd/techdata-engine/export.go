// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/techdata-engine/internal/export"
	"github.com/pdiddy/techdata-engine/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the session's products as a datasheet artifact",
	Long: `Export reconciles every product in the session against the property
catalog and writes a datasheet file to the output directory. Supported
formats: csv, json, yaml, markdown. Use --properties to restrict the
export to a subset of catalog properties, or --selected to export only
the active product.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	session, st, err := restoreSession()
	if err != nil {
		return err
	}
	defer st.Close()

	res, ok := session.Result()
	if !ok {
		return fmt.Errorf("no active session: run `techdata-engine search` first")
	}

	cfg := engineConfig()
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		cfg.Export.Format = types.ExportFormat(format)
	}
	if outputDir, _ := cmd.Flags().GetString("output-dir"); outputDir != "" {
		cfg.Export.OutputDir = outputDir
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	if names, _ := cmd.Flags().GetString("properties"); names != "" {
		cat, err = catalogSubset(cat, names)
		if err != nil {
			return err
		}
	}

	products := res.Products
	if selected, _ := cmd.Flags().GetBool("selected"); selected {
		products = []types.Product{res.Products[session.ActiveIndex()]}
	}

	path, err := export.ExportSet(products, cat, cfg.Export)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d product(s) to %s\n", len(products), path)
	return nil
}

// catalogSubset restricts the catalog to the named properties, keeping
// catalog order.
func catalogSubset(cat types.Catalog, names string) (types.Catalog, error) {
	wanted := make(map[string]bool)
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !cat.Contains(name) {
			return nil, fmt.Errorf("unknown catalog property %q", name)
		}
		wanted[name] = true
	}

	var subset types.Catalog
	for _, def := range cat {
		if wanted[def.Name] {
			subset = append(subset, def)
		}
	}
	if len(subset) == 0 {
		return nil, fmt.Errorf("no catalog properties selected")
	}
	return subset, nil
}

func init() {
	exportCmd.Flags().String("format", "", "artifact format: csv, json, yaml, or markdown (default from config)")
	exportCmd.Flags().String("output-dir", "", "directory for exported artifacts (default from config)")
	exportCmd.Flags().String("properties", "", "comma-separated catalog property names to export")
	exportCmd.Flags().Bool("selected", false, "export only the selected product")

	rootCmd.AddCommand(exportCmd)
}
