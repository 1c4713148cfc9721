// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/techdata-engine/internal/reconcile"
	"github.com/pdiddy/techdata-engine/internal/score"
	"github.com/pdiddy/techdata-engine/internal/store"
	"github.com/pdiddy/techdata-engine/internal/workflow"
	"github.com/pdiddy/techdata-engine/pkg/types"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Inspect and manage the product set of the current session",
}

// --- list subcommand ---

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all products in the session",
	RunE:  runProductsList,
}

func runProductsList(cmd *cobra.Command, args []string) error {
	session, st, err := restoreSession()
	if err != nil {
		return err
	}
	defer st.Close()

	res, ok := session.Result()
	if !ok {
		fmt.Println("No active session.")
		return nil
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Products)
	}

	printProducts(res, session.ActiveIndex())
	return nil
}

// --- show subcommand ---

var productsShowCmd = &cobra.Command{
	Use:   "show [index]",
	Short: "Show the reconciled property set of a product",
	Long: `Show reconciles a product against the property catalog and prints the
stable ordered property set: identity fields first, then every catalog
property in catalog order, with placeholders for properties no source
reported. Defaults to the selected product.`,
	RunE: runProductsShow,
}

func runProductsShow(cmd *cobra.Command, args []string) error {
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

	cat, err := loadCatalog(engineConfig())
	if err != nil {
		return err
	}
	set := reconcile.Reconcile(product, cat)

	fmt.Printf("%s — %s\n\n", displayArticleNumber(product), product.ProductName)
	fmt.Printf("%-28s  %-32s  %-10s  %-10s  %s\n", "Property", "Value", "Confidence", "Agreement", "Sources")
	fmt.Println(strings.Repeat("-", 96))
	for _, v := range set.Values() {
		hasValue := v.Value != "" && v.Value != reconcile.NotFoundValue
		fmt.Printf("%-28s  %-32s  %-10s  %-10s  %d\n",
			clip(v.Name, 28), clip(v.Value, 32),
			score.Confidence(v.Confidence),
			score.Consistency(hasValue, res.AutomatedMode(), v.AgreementCount),
			len(v.Sources))
	}
	return nil
}

// --- select subcommand ---

var productsSelectCmd = &cobra.Command{
	Use:   "select <index>",
	Short: "Make the product at index the active one",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsSelect,
}

func runProductsSelect(cmd *cobra.Command, args []string) error {
	session, st, err := restoreSession()
	if err != nil {
		return err
	}
	defer st.Close()

	res, ok := session.Result()
	if !ok {
		return fmt.Errorf("no active session: run `techdata-engine search` first")
	}

	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("index must be a number, got %q", args[0])
	}
	session.Select(index)

	if err := persistSession(session, st); err != nil {
		return err
	}
	printProducts(res, session.ActiveIndex())
	return nil
}

// --- delete subcommand ---

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Remove the product at index from the session",
	Long: `Delete removes one product from the session. The selection follows the
surviving products; deleting the last product clears the session.
Out-of-range indices are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runProductsDelete,
}

func runProductsDelete(cmd *cobra.Command, args []string) error {
	session, st, err := restoreSession()
	if err != nil {
		return err
	}
	defer st.Close()

	if _, ok := session.Result(); !ok {
		return fmt.Errorf("no active session: run `techdata-engine search` first")
	}

	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("index must be a number, got %q", args[0])
	}
	session.Delete(index)

	if err := persistSession(session, st); err != nil {
		return err
	}

	if res, ok := session.Result(); ok {
		printProducts(res, session.ActiveIndex())
	} else {
		fmt.Println("Session cleared.")
	}
	return nil
}

// --- shared helpers ---

// restoreSession loads the persisted session into a workflow session.
// Commands that only inspect or reshape the product set never talk to
// the providers, so the session carries no backends.
func restoreSession() (*workflow.Session, *store.Store, error) {
	cfg := engineConfig()
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	session := workflow.NewSession(nil, nil, cat, os.Stderr)
	res, active, ok, err := st.LoadSession(context.Background())
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	if ok {
		session.Restore(res, active)
	}
	return session, st, nil
}

// persistSession writes the session back, or clears the stored one when
// the session went idle.
func persistSession(session *workflow.Session, st *store.Store) error {
	if snapshot, active, ok := session.Snapshot(); ok {
		return st.SaveSession(context.Background(), snapshot, active)
	}
	return st.ClearSession(context.Background())
}

func parseIndex(arg string, length int) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("index must be a number, got %q", arg)
	}
	if index < 0 || index >= length {
		return 0, fmt.Errorf("index %d out of range: session holds %d product(s)", index, length)
	}
	return index, nil
}

// printProducts writes the product table with the active row marked.
func printProducts(res types.Result, active int) {
	fmt.Printf("   %-4s  %-14s  %-36s  %-10s  %-7s  %s\n", "#", "Article", "Product", "Status", "Props", "Sources")
	fmt.Println(strings.Repeat("-", 88))
	for i, p := range res.Products {
		marker := " "
		if i == active {
			marker = "*"
		}
		status := "complete"
		if p.Meta.SearchPending || (len(p.Properties) == 0 && len(p.Meta.Sources) > 0) {
			status = "pending"
		}
		fmt.Printf("%s  %-4d  %-14s  %-36s  %-10s  %-7d  %d\n",
			marker, i, clip(displayArticleNumber(p), 14), clip(p.ProductName, 36),
			status, len(p.Properties), len(p.Meta.Sources))
	}
	fmt.Printf("\n%d product(s)\n", len(res.Products))
}

func displayArticleNumber(p types.Product) string {
	if p.ArticleNumber == "" {
		return "-"
	}
	return p.ArticleNumber
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func init() {
	productsListCmd.Flags().Bool("json", false, "output products as JSON")

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsShowCmd)
	productsCmd.AddCommand(productsSelectCmd)
	productsCmd.AddCommand(productsDeleteCmd)

	rootCmd.AddCommand(productsCmd)
}
