package extractor

import (
	"context"
	"fmt"
	"strings"
)

// Engine selects the OCR acquisition path.
type Engine string

const (
	// EngineTesseract is the local path: text layer, pdftotext, then
	// Tesseract for scans.
	EngineTesseract Engine = "tesseract"
	// EngineTyphoon sends page images to the Typhoon vision API, with
	// per-page local fallback.
	EngineTyphoon Engine = "typhoon"
)

// ComposeRawText joins per-page text into the page-tagged blob the
// extraction engine consumes. The sentinel format must stay in sync with
// the parser's page index ("--- Page N ---").
func ComposeRawText(pages []string) string {
	var b strings.Builder
	for i, page := range pages {
		fmt.Fprintf(&b, "--- Page %d ---\n%s\n\n", i+1, page)
	}
	return b.String()
}

// Acquire extracts a PDF's text with the chosen engine and returns it
// page-tagged, ready for extraction.
func Acquire(ctx context.Context, path string, engine Engine, lang string, client *TyphoonClient) (string, error) {
	var pages []string
	var err error

	if engine == EngineTyphoon && client != nil && client.APIKey != "" {
		pages, err = ExtractTextRemote(ctx, path, lang, client)
	} else {
		pages, err = ExtractText(ctx, path, lang)
	}
	if err != nil {
		return "", err
	}
	return ComposeRawText(pages), nil
}
