package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/cashflow-ocr/internal/config"
	"github.com/insightdelivered/cashflow-ocr/internal/extractor"
	"github.com/insightdelivered/cashflow-ocr/internal/master"
	"github.com/insightdelivered/cashflow-ocr/internal/models"
	"github.com/insightdelivered/cashflow-ocr/internal/parser"
	"github.com/insightdelivered/cashflow-ocr/internal/store"
	"github.com/insightdelivered/cashflow-ocr/internal/writer"
)

var (
	processBank   string
	processEngine string
	processOutput string
	processSave   bool
	processExcel  bool
)

var processCmd = &cobra.Command{
	Use:   "process [flags] [file.pdf ...]",
	Short: "OCR advice PDFs and extract transaction records",
	Long: `Process runs OCR and field extraction over the given PDFs. With no
arguments, the configured source directory is scanned for PDFs.

The bank dialect is auto-detected from the document text; use --bank to
pin it (krungthai, cimb).`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processBank, "bank", "", "bank dialect: krungthai, cimb (auto-detected if omitted)")
	processCmd.Flags().StringVar(&processEngine, "engine", "", "OCR engine: tesseract, typhoon (defaults to config)")
	processCmd.Flags().StringVar(&processOutput, "output", "", "output CSV path (defaults to input filename with .csv extension)")
	processCmd.Flags().BoolVar(&processSave, "save", false, "save extracted records to the database")
	processCmd.Flags().BoolVar(&processExcel, "excel", false, "append extracted records to the configured Excel report")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	inputs := args
	if len(inputs) == 0 {
		var err error
		inputs, err = scanSourceDir(cfg.SourceDir)
		if err != nil {
			return err
		}
		if len(inputs) == 0 {
			return fmt.Errorf("no PDF files found in %q", cfg.SourceDir)
		}
	}

	dir, err := loadMaster(cfg.MasterPath)
	if err != nil {
		return err
	}

	var st *store.Store
	if processSave {
		st, err = store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	engine := extractor.Engine(cfg.OCR.Engine)
	if processEngine != "" {
		engine = extractor.Engine(processEngine)
	}
	typhoon := typhoonClient(cfg)

	return processAll(cmd.Context(), cfg, inputs, dir, st, engine, typhoon)
}

// processAll runs every input to completion: a failing PDF is reported
// and the batch moves on, so one bad scan never blocks the rest. The
// collected errors surface through cobra's RunE path, which keeps the
// store's deferred Close running.
func processAll(ctx context.Context, cfg config.Config, inputs []string, dir master.Directory, st *store.Store, engine extractor.Engine, typhoon *extractor.TyphoonClient) error {
	var errs []error
	for _, input := range inputs {
		if err := processFile(ctx, cfg, input, dir, st, engine, typhoon); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", input, err)
			errs = append(errs, fmt.Errorf("%s: %w", input, err))
		}
	}
	return errors.Join(errs...)
}

func processFile(ctx context.Context, cfg config.Config, input string, dir master.Directory, st *store.Store, engine extractor.Engine, typhoon *extractor.TyphoonClient) error {
	if _, err := os.Stat(input); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", input)
	}
	if strings.ToLower(filepath.Ext(input)) != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", filepath.Ext(input))
	}

	fmt.Printf("Processing: %s\n", input)

	rawText, err := extractor.Acquire(ctx, input, engine, cfg.OCR.Language, typhoon)
	if err != nil {
		return fmt.Errorf("text acquisition failed: %w", err)
	}

	bank := parser.Detect(rawText)
	p := parser.New(bank)
	if processBank != "" {
		bank = models.BankType(strings.ToLower(processBank))
		p = parser.New(bank)
	}
	if bank == models.BankGeneric {
		fmt.Println("  No bank signature found, using generic extractor")
	} else {
		fmt.Printf("  Detected bank: %s\n", bank)
	}

	records := parser.ExtractAllWith(p, rawText)
	dir.Enrich(records)
	for i := range records {
		records[i].SourceFile = filepath.Base(input)
	}

	fmt.Printf("  Found %d record(s)\n", len(records))
	if len(records) == 0 {
		fmt.Println("  Warning: no advice records found. The document may not match known layouts.")
	}
	for _, rec := range records {
		fmt.Printf("    p%-2d %-6s %-12s %-15s %s\n",
			rec.Page, rec.Transaction, rec.TotalValue, rec.AccountNo, rec.ReferenceNo)
	}

	outPath := processOutput
	if outPath == "" {
		outPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".csv"
	}
	w := &writer.CSVWriter{IncludeHeader: true}
	if err := w.WriteToFile(outPath, records); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}
	fmt.Printf("  Output: %s\n", outPath)

	if processExcel {
		if err := writer.AppendToWorkbook(cfg.ExportPath, records); err != nil {
			return fmt.Errorf("Excel append failed: %w", err)
		}
		fmt.Printf("  Appended to: %s\n", cfg.ExportPath)
	}

	if st != nil {
		count, err := st.Save(records)
		if err != nil {
			return fmt.Errorf("database save failed: %w", err)
		}
		fmt.Printf("  Saved %d record(s) to %s\n", count, cfg.DBPath)
	}

	fmt.Println("  Done.")
	return nil
}

func scanSourceDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning source dir %q: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

func loadMaster(path string) (master.Directory, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: master workbook %q not found, skipping enrichment\n", path)
		return nil, nil
	}
	dir, err := master.LoadWorkbook(path)
	if err != nil {
		return nil, fmt.Errorf("loading master workbook: %w", err)
	}
	return dir, nil
}

func typhoonClient(cfg config.Config) *extractor.TyphoonClient {
	if cfg.OCR.TyphoonAPIKey == "" {
		return nil
	}
	return &extractor.TyphoonClient{
		APIKey: cfg.OCR.TyphoonAPIKey,
		URL:    cfg.OCR.TyphoonURL,
		Model:  cfg.OCR.TyphoonModel,
	}
}
