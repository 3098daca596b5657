package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/cashflow-ocr/internal/api"
	"github.com/insightdelivered/cashflow-ocr/internal/extractor"
	"github.com/insightdelivered/cashflow-ocr/internal/store"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for the review frontend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		dir, err := loadMaster(cfg.MasterPath)
		if err != nil {
			return err
		}

		srv := api.NewServer(st, dir, extractor.Engine(cfg.OCR.Engine), cfg.OCR.Language, typhoonClient(cfg))

		port := servePort
		if port == "" {
			port = cfg.Server.Port
		}
		slog.Info("starting server", "port", port, "db", cfg.DBPath, "master", cfg.MasterPath)
		return srv.Listen(port)
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (defaults to config)")
	rootCmd.AddCommand(serveCmd)
}
