// Package api exposes the extraction engine and record store over HTTP
// for the review frontend.
package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/insightdelivered/cashflow-ocr/internal/extractor"
	"github.com/insightdelivered/cashflow-ocr/internal/master"
	"github.com/insightdelivered/cashflow-ocr/internal/store"
)

const Version = "1.0.0"

// Server wires the HTTP API. Store may be nil, in which case the record
// endpoints are not registered and only extraction is available.
type Server struct {
	App    *fiber.App
	Store  *store.Store
	Master master.Directory

	// OCR acquisition settings for uploaded PDFs.
	Engine  extractor.Engine
	OCRLang string
	Typhoon *extractor.TyphoonClient

	log *slog.Logger
}

// NewServer builds the fiber app and registers routes.
func NewServer(st *store.Store, dir master.Directory, engine extractor.Engine, lang string, typhoon *extractor.TyphoonClient) *Server {
	s := &Server{
		App:     fiber.New(fiber.Config{BodyLimit: 32 << 20}),
		Store:   st,
		Master:  dir,
		Engine:  engine,
		OCRLang: lang,
		Typhoon: typhoon,
		log:     slog.Default().With("component", "api"),
	}

	s.App.Use(recover.New())
	s.App.Use(cors.New())

	s.App.Get("/api/health", s.HandleHealth)
	s.App.Post("/api/extract", s.HandleExtract)

	if s.Store != nil {
		s.App.Get("/api/records", s.HandleListRecords)
		s.App.Post("/api/records", s.HandleSaveRecords)
		s.App.Delete("/api/records/:id", s.HandleDeleteRecord)
	}

	return s
}

// Listen blocks serving the API on the given port.
func (s *Server) Listen(port string) error {
	s.log.Info("api listening", "port", port)
	return s.App.Listen(":" + port)
}
