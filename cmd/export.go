package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/cashflow-ocr/internal/store"
	"github.com/insightdelivered/cashflow-ocr/internal/writer"
)

var (
	exportBank     string
	exportCompany  string
	exportCurrency string
	exportStart    string
	exportEnd      string
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored records to a timestamped Excel report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.Load(store.Filter{
			Bank:      exportBank,
			Company:   exportCompany,
			Currency:  exportCurrency,
			StartDate: exportStart,
			EndDate:   exportEnd,
		})
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No records match the given filters.")
			return nil
		}

		out := exportOut
		if out == "" {
			name := fmt.Sprintf("DB_Report_%s.xlsx", time.Now().Format("20060102_150405"))
			out = filepath.Join(filepath.Dir(cfg.ExportPath), name)
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
		if err := writer.ExportStored(out, records); err != nil {
			return err
		}

		fmt.Printf("Exported %d record(s) to %s\n", len(records), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportBank, "bank", "", "filter by bank name")
	exportCmd.Flags().StringVar(&exportCompany, "company", "", "filter by company name")
	exportCmd.Flags().StringVar(&exportCurrency, "currency", "", "filter by currency")
	exportCmd.Flags().StringVar(&exportStart, "start", "", "filter by start date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportEnd, "end", "", "filter by end date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportOut, "output", "", "output xlsx path (defaults to a timestamped report)")
	rootCmd.AddCommand(exportCmd)
}
