package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/invoice-ledger/internal/notify"
	"github.com/FACorreiaa/invoice-ledger/internal/report"
	"github.com/FACorreiaa/invoice-ledger/internal/textsource"
)

// suggestionFloor filters the nearest-code list down to plausible
// matches; anything below is noise from ranking the whole table.
const suggestionFloor = 40

var outputPath string

var processCmd = &cobra.Command{
	Use:   "process <invoice>",
	Short: "Extract, classify, and summarize one invoice document",
	Long: `process runs the extraction pipeline over one invoice: render the
document to text lines, pick out the item rows, resolve each item code
to its GL account, and print the itemized report with the GL summary
and reconciliation cross-check.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initDependencies(cmd.Context())
		if err != nil {
			return err
		}
		defer deps.Cleanup()

		return processDocument(cmd.Context(), deps, args[0], outputPath)
	},
}

func init() {
	processCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"write extracted items to a file (.xlsx or .csv)")
	rootCmd.AddCommand(processCmd)
}

// processDocument runs the full pipeline over one document: render to
// lines, extract, resolve, summarize, report.
func processDocument(ctx context.Context, deps *dependencies, docPath, output string) error {
	provider, err := textsource.NewProvider(docPath, deps.Logger)
	if err != nil {
		return err
	}
	lines, err := provider.Lines(ctx)
	if err != nil {
		return err
	}

	resolver, processor := deps.newRun()
	result, err := processor.Process(lines)
	if err != nil {
		return err
	}

	data := report.Data{
		Items:       result.Items,
		Summary:     deps.Builder.Build(result.Items),
		Totals:      result.Totals,
		ItemsTotal:  deps.Builder.ItemsTotal(result.Items),
		Discrepancy: deps.Builder.Reconcile(result.Items, result.Totals),
	}

	if output != "" {
		if err := report.WriteFile(output, result.Items); err != nil {
			return err
		}
		deps.Logger.Info("results saved",
			slog.String("path", output),
			slog.Int("items", len(result.Items)))
	}

	if err := report.NewConsole(nil).Render(data); err != nil {
		return err
	}

	return reportUnresolved(deps, filepath.Base(docPath), resolver.Unresolved())
}

// reportUnresolved prints nearest-code suggestions for the codes that
// fell back to the review sentinel, and mails them when --notify is on.
func reportUnresolved(deps *dependencies, invoice string, codes []string) error {
	if len(codes) == 0 {
		return nil
	}

	fmt.Println("\n=== Unresolved Codes ===")
	review := make([]notify.UnresolvedCode, 0, len(codes))
	for _, code := range codes {
		var nearest []string
		for _, s := range deps.Suggester.Rank(code, 3) {
			if s.Score >= suggestionFloor {
				nearest = append(nearest, s.ItemCode)
			}
		}
		if len(nearest) > 0 {
			fmt.Printf("%-12s closest: %s\n", code, strings.Join(nearest, ", "))
		} else {
			fmt.Printf("%-12s closest: none\n", code)
		}
		review = append(review, notify.UnresolvedCode{ItemCode: code, Suggestions: nearest})
	}

	if !sendNotify {
		return nil
	}
	return deps.Notifier.SendUnresolved(invoice, review)
}
