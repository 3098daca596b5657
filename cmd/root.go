// Package cmd implements the cashflow-ocr command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/cashflow-ocr/internal/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "cashflow-ocr",
	Short: "Extract structured transactions from scanned bank advice PDFs",
	Long: `cashflow-ocr converts scanned bank advice documents (debit/credit
advices from Krungthai, CIMB and similar trade-services paper) into
structured transaction records: account number, bank, currency, date,
reference and amount.

Text is acquired with local OCR or the Typhoon vision API, segmented
into advice chunks, and run through per-bank field extractors. Records
are enriched against the AC master workbook and can be exported to
CSV/Excel or saved to a local database.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "cashflow.yaml", "path to the configuration file")
}

func loadConfig() config.Config {
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	return cfg
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
