// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes the reconciled, catalog-ordered property set of a
// product list to a downloadable artifact. Column order follows the
// catalog passed in, which may be a subset of the full catalog to export
// fewer columns; result-level metadata never appears in the artifact.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/techdata-engine/internal/reconcile"
	"github.com/pdiddy/techdata-engine/internal/score"
	"github.com/pdiddy/techdata-engine/pkg/types"
)

// Entry is one exported property of one product.
type Entry struct {
	Name       string   `json:"name" yaml:"name"`
	Value      string   `json:"value" yaml:"value"`
	Confidence int      `json:"confidence" yaml:"confidence"`
	Tier       string   `json:"tier" yaml:"tier"`
	Sources    []string `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// ProductExport is one product's reconciled property set in column order.
type ProductExport struct {
	ArticleNumber string  `json:"article_number" yaml:"article_number"`
	ProductName   string  `json:"product_name" yaml:"product_name"`
	Properties    []Entry `json:"properties" yaml:"properties"`
}

// ExportSet reconciles every product against the catalog and writes one
// artifact in the configured format. It returns the written file path.
func ExportSet(products []types.Product, catalog types.Catalog, cfg types.ExportConfig) (string, error) {
	if len(products) == 0 {
		return "", fmt.Errorf("nothing to export: product list is empty")
	}

	exports := make([]ProductExport, len(products))
	for i, p := range products {
		exports[i] = buildExport(p, catalog)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	stamp := time.Now().Format("20060102-150405")
	var path string
	var err error
	switch cfg.Format {
	case types.ExportCSV, "":
		path = filepath.Join(cfg.OutputDir, "datasheet-"+stamp+".csv")
		err = writeCSV(path, exports)
	case types.ExportJSON:
		path = filepath.Join(cfg.OutputDir, "datasheet-"+stamp+".json")
		err = writeJSON(path, exports)
	case types.ExportYAML:
		path = filepath.Join(cfg.OutputDir, "datasheet-"+stamp+".yaml")
		err = writeYAML(path, exports)
	case types.ExportMarkdown:
		path = filepath.Join(cfg.OutputDir, "datasheet-"+stamp+".md")
		err = writeMarkdown(path, exports)
	default:
		return "", fmt.Errorf("unsupported export format %q: use csv, json, yaml, or markdown", cfg.Format)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// buildExport reconciles one product and flattens the ordered set.
func buildExport(p types.Product, catalog types.Catalog) ProductExport {
	set := reconcile.Reconcile(p, catalog)

	out := ProductExport{
		ArticleNumber: p.ArticleNumber,
		ProductName:   p.ProductName,
	}
	for _, v := range set.Values() {
		if v.Name == reconcile.FieldArticleNumber || v.Name == reconcile.FieldProductName {
			continue
		}
		entry := Entry{
			Name:       v.Name,
			Value:      v.Value,
			Confidence: v.Confidence,
			Tier:       string(score.Confidence(v.Confidence)),
		}
		for _, s := range v.Sources {
			entry.Sources = append(entry.Sources, s.URL)
		}
		out.Properties = append(out.Properties, entry)
	}
	return out
}

// writeCSV writes one row per product: identity columns first, then the
// catalog properties in reconciled order.
func writeCSV(path string, exports []ProductExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{reconcile.FieldArticleNumber, reconcile.FieldProductName}
	for _, e := range exports[0].Properties {
		header = append(header, e.Name)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, pe := range exports {
		row := []string{pe.ArticleNumber, pe.ProductName}
		for _, e := range pe.Properties {
			row = append(row, e.Value)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func writeJSON(path string, exports []ProductExport) error {
	data, err := json.MarshalIndent(exports, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func writeYAML(path string, exports []ProductExport) error {
	data, err := yaml.Marshal(exports)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// writeMarkdown writes one datasheet section per product.
func writeMarkdown(path string, exports []ProductExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	md := markdown.NewMarkdown(f)
	md.H1("Product Datasheet Export")
	md.PlainText("")

	for _, pe := range exports {
		title := pe.ProductName
		if pe.ArticleNumber != "" {
			title = pe.ArticleNumber + " — " + pe.ProductName
		}
		md.H2(title)
		md.PlainText("")

		rows := make([][]string, 0, len(pe.Properties))
		for _, e := range pe.Properties {
			rows = append(rows, []string{
				e.Name,
				e.Value,
				strconv.Itoa(e.Confidence),
				strings.Join(e.Sources, ", "),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Property", "Value", "Confidence", "Sources"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return md.Build()
}
