// Package config loads the cashflow.yaml configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level cashflow.yaml configuration.
type Config struct {
	// SourceDir is scanned for advice PDFs by the process command.
	SourceDir string `yaml:"source_dir"`
	// MasterPath points at the AC master workbook used for enrichment.
	MasterPath string `yaml:"master_path"`
	// ExportPath is the cumulative Excel report the process command
	// appends to.
	ExportPath string `yaml:"export_path"`
	// DBPath is the sqlite database for saved records.
	DBPath string `yaml:"db_path"`

	OCR    OCRConfig    `yaml:"ocr"`
	Server ServerConfig `yaml:"server"`
}

// OCRConfig selects and parameterizes the acquisition engine.
type OCRConfig struct {
	Engine        string `yaml:"engine"` // "tesseract" or "typhoon"
	Language      string `yaml:"language"`
	TyphoonAPIKey string `yaml:"typhoon_api_key"`
	TyphoonURL    string `yaml:"typhoon_url"`
	TyphoonModel  string `yaml:"typhoon_model"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		SourceDir:  "source",
		MasterPath: "Master/AC_Master.xlsx",
		ExportPath: "output/CashFlow_Report.xlsx",
		DBPath:     "ocr_data.db",
		OCR: OCRConfig{
			Engine:   "tesseract",
			Language: "tha+eng",
		},
		Server: ServerConfig{
			Port: "8080",
		},
	}
}

// Load reads a yaml config file, layering it over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads the config file when it exists and silently falls
// back to defaults when it does not.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}
