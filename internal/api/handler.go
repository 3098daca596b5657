package api

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/cashflow-ocr/internal/extractor"
	"github.com/insightdelivered/cashflow-ocr/internal/models"
	"github.com/insightdelivered/cashflow-ocr/internal/parser"
	"github.com/insightdelivered/cashflow-ocr/internal/store"
)

// ExtractResponse is the JSON response from POST /api/extract.
type ExtractResponse struct {
	Success     bool            `json:"success"`
	Error       string          `json:"error,omitempty"`
	BatchID     string          `json:"batchId,omitempty"`
	Bank        models.BankType `json:"bank"`
	Records     []models.Record `json:"records"`
	Count       int             `json:"count"`
	TotalDebit  string          `json:"totalDebit"`
	TotalCredit string          `json:"totalCredit"`
	// RawText is the page-tagged OCR output, passed through for audit
	// and preview.
	RawText string `json:"rawText,omitempty"`
	Version string `json:"version,omitempty"`
}

func (s *Server) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
		"engine":  "fiber",
	})
}

// HandleExtract accepts either an uploaded advice PDF (form field
// "file") or pre-extracted page-tagged text (form field "rawText") and
// returns the structured records. Optional form fields: "bank" to pin
// the dialect, "engine" to pick the OCR path.
func (s *Server) HandleExtract(c *fiber.Ctx) error {
	rawText := c.FormValue("rawText")

	if rawText == "" {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "no file uploaded and no rawText provided; use form field 'file' or 'rawText'")
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
			return writeError(c, fiber.StatusBadRequest, "only PDF files are supported")
		}

		tmp, err := os.CreateTemp("", "advice-*.pdf")
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "failed to create temp file")
		}
		defer os.Remove(tmp.Name())

		src, err := fileHeader.Open()
		if err != nil {
			tmp.Close()
			return writeError(c, fiber.StatusBadRequest, "failed to open upload")
		}
		_, copyErr := io.Copy(tmp, src)
		src.Close()
		tmp.Close()
		if copyErr != nil {
			return writeError(c, fiber.StatusInternalServerError, "failed to save upload")
		}

		engine := s.Engine
		if v := c.FormValue("engine"); v != "" {
			engine = extractor.Engine(v)
		}

		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Minute)
		defer cancel()
		rawText, err = extractor.Acquire(ctx, tmp.Name(), engine, s.OCRLang, s.Typhoon)
		if err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, "text acquisition failed: "+err.Error())
		}
	}

	bank := parser.Detect(rawText)
	p := parser.New(bank)
	if v := c.FormValue("bank"); v != "" {
		bank = models.BankType(strings.ToLower(v))
		p = parser.New(bank)
	}

	records := parser.ExtractAllWith(p, rawText)
	s.Master.Enrich(records)

	if name := c.FormValue("sourceFile"); name != "" {
		for i := range records {
			records[i].SourceFile = name
		}
	}

	if records == nil {
		records = []models.Record{}
	}

	totalDebit, totalCredit := sumByType(records)
	s.log.Info("extraction complete", "bank", string(bank), "records", len(records))

	return c.JSON(ExtractResponse{
		Success:     true,
		BatchID:     uuid.NewString(),
		Bank:        bank,
		Records:     records,
		Count:       len(records),
		TotalDebit:  totalDebit.StringFixed(2),
		TotalCredit: totalCredit.StringFixed(2),
		RawText:     rawText,
		Version:     Version,
	})
}

// HandleListRecords returns saved records; query params bank, company,
// currency, start and end narrow the result.
func (s *Server) HandleListRecords(c *fiber.Ctx) error {
	records, err := s.Store.Load(store.Filter{
		Bank:      c.Query("bank"),
		Company:   c.Query("company"),
		Currency:  c.Query("currency"),
		StartDate: c.Query("start"),
		EndDate:   c.Query("end"),
	})
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
	if records == nil {
		records = []store.StoredRecord{}
	}
	return c.JSON(fiber.Map{"records": records, "count": len(records)})
}

// HandleSaveRecords persists a reviewed batch of records.
func (s *Server) HandleSaveRecords(c *fiber.Ctx) error {
	var records []models.Record
	if err := c.BodyParser(&records); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid record payload: "+err.Error())
	}
	count, err := s.Store.Save(records)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"saved": count})
}

func (s *Server) HandleDeleteRecord(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid record id")
	}
	count, err := s.Store.Delete([]int64{id})
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"deleted": count})
}

func sumByType(records []models.Record) (totalDebit, totalCredit decimal.Decimal) {
	for _, rec := range records {
		d, err := decimal.NewFromString(rec.TotalValue)
		if err != nil {
			continue
		}
		switch rec.Transaction {
		case models.Debit:
			totalDebit = totalDebit.Add(d)
		case models.Credit:
			totalCredit = totalCredit.Add(d)
		}
	}
	return totalDebit, totalCredit
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ExtractResponse{
		Success: false,
		Error:   msg,
		Records: []models.Record{},
	})
}
