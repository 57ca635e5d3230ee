package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/invoice-ledger/internal/profile"
	"github.com/FACorreiaa/invoice-ledger/pkg/config"
)

var (
	profilePath string
	verbose     bool
	codesPath   string
	refDB       bool
	sendNotify  bool

	cfg    *config.Config
	logger *slog.Logger
	prof   *profile.Profile
)

var rootCmd = &cobra.Command{
	Use:   "invoicectl",
	Short: "Extract and classify Eberhardt Foods invoice lines",
	Long: `invoicectl parses plain-text renderings of Eberhardt Foods vendor
invoices, resolves every item code to a GL account, and prints an
itemized report with a reconciliation cross-check.

PDF documents are rendered through pdftotext; text files are read
as-is. GL codes come from a reference table (XLSX, CSV, or Postgres),
with profile overrides for known special codes. Codes missing from the
table are booked to a review sentinel and can be e-mailed to a
reviewer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initRuntime()
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the CLI and exits non-zero on any command error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "",
		"vendor profile YAML (default: the embedded Eberhardt Foods profile)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
	rootCmd.PersistentFlags().StringVar(&codesPath, "codes", "EBERHARDT_DATABASE.xlsx",
		"GL reference table file (.xlsx or .csv)")
	rootCmd.PersistentFlags().BoolVar(&refDB, "ref-db", false,
		"load the GL reference table from Postgres instead of a file")
	rootCmd.PersistentFlags().BoolVar(&sendNotify, "notify", false,
		"e-mail unresolved codes to the configured reviewers")
}

func initRuntime() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger, err = newLogger(cfg.Log, verbose)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if profilePath != "" {
		prof, err = profile.Load(profilePath)
		if err != nil {
			return fmt.Errorf("loading vendor profile: %w", err)
		}
		logger.Info("vendor profile loaded",
			slog.String("path", profilePath),
			slog.String("vendor", prof.Name))
	} else {
		prof = profile.Default()
	}
	return nil
}

// newLogger writes to stderr so report output on stdout stays clean;
// LOG_FILE appends a copy of everything to a file.
func newLogger(logCfg config.LogConfig, debug bool) (*slog.Logger, error) {
	level := slog.LevelInfo
	switch strings.ToLower(logCfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if logCfg.File != "" {
		f, err := os.OpenFile(logCfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w = io.MultiWriter(os.Stderr, f)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
