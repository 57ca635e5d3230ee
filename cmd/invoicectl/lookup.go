package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/invoice-ledger/internal/domain/resolution"
)

var (
	lookupLimit  int
	lookupPrefix bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <query>",
	Short: "Search the GL reference table",
	Long: `lookup searches the reference table through an in-memory full-text
index: exact item codes, misspelled codes, GL codes, and description
words all match. When nothing matches exactly, the closest item codes
are suggested.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initDependencies(cmd.Context())
		if err != nil {
			return err
		}
		defer deps.Cleanup()

		return runLookup(deps, args[0])
	},
}

func init() {
	lookupCmd.Flags().IntVar(&lookupLimit, "limit", 10, "maximum results to show")
	lookupCmd.Flags().BoolVar(&lookupPrefix, "prefix", false,
		"match item codes by prefix instead of full-text search")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(deps *dependencies, query string) error {
	index, err := resolution.NewSearchIndex()
	if err != nil {
		return fmt.Errorf("building search index: %w", err)
	}
	defer index.Close()

	if err := index.IndexTable(deps.Table); err != nil {
		return fmt.Errorf("indexing reference table: %w", err)
	}

	var results []resolution.SearchResult
	if lookupPrefix {
		results, err = index.SearchPrefix(query, lookupLimit)
	} else {
		results, err = index.Search(query, lookupLimit)
	}
	if err != nil {
		return fmt.Errorf("searching reference table: %w", err)
	}

	if len(results) == 0 {
		fmt.Printf("No matches for %q.\n", query)
		printSuggestions(deps, query)
		return nil
	}

	fmt.Printf("%-12s %-10s %s\n", "ITEM CODE", "GL CODE", "GL DESCRIPTION")
	for _, r := range results {
		fmt.Printf("%-12s %-10s %s\n", r.Entry.ItemCode, r.Entry.GLCode, r.Entry.GLDescription)
	}
	return nil
}

// printSuggestions lists the nearest item codes for a query that hit
// nothing, so a typo still leads somewhere.
func printSuggestions(deps *dependencies, query string) {
	var nearest []string
	for _, s := range deps.Suggester.Rank(strings.ToUpper(query), 3) {
		if s.Score >= suggestionFloor {
			nearest = append(nearest, fmt.Sprintf("%s (%s %s)", s.ItemCode, s.GLCode, s.GLDescription))
		}
	}
	if len(nearest) == 0 {
		return
	}
	fmt.Println("Closest item codes:")
	for _, n := range nearest {
		fmt.Printf("  %s\n", n)
	}
}
