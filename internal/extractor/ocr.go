package extractor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultOCRLanguage covers the corpus: Thai bank paper with English
// field labels.
const DefaultOCRLanguage = "tha+eng"

// ExtractTextOCR converts PDF pages to images and runs Tesseract OCR,
// one page per element. Requires pdftoppm (poppler-utils) and tesseract.
func ExtractTextOCR(ctx context.Context, path, lang string) ([]string, error) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return nil, fmt.Errorf("tesseract not available (install tesseract-ocr): %w", err)
	}
	if lang == "" {
		lang = DefaultOCRLanguage
	}

	images, cleanup, err := renderPages(ctx, path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var pages []string
	for _, img := range images {
		outBase := strings.TrimSuffix(img, filepath.Ext(img)) + "-ocr"
		// PSM 4: single column of variable-size text, which suits the
		// letter-style advice layout.
		cmd := exec.CommandContext(ctx, "tesseract", img, outBase, "-l", lang, "--psm", "4")
		if out, err := cmd.CombinedOutput(); err != nil {
			fmt.Fprintf(os.Stderr, "tesseract warning for %s: %v (output: %s)\n", img, err, string(out))
			pages = append(pages, "")
			continue
		}
		data, err := os.ReadFile(outBase + ".txt")
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.TrimSpace(string(data)))
	}

	if totalTextLen(pages) == 0 {
		return nil, fmt.Errorf("tesseract produced no text from %d page images", len(images))
	}
	return pages, nil
}

// renderPages rasterizes every PDF page to a JPEG in a temp directory,
// returning the image paths in page order and a cleanup func.
func renderPages(ctx context.Context, path string) ([]string, func(), error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, nil, fmt.Errorf("pdftoppm not available (install poppler-utils): %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "advice-pages-*")
	if err != nil {
		return nil, nil, fmt.Errorf("creating temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(tmpDir) }

	// 300 DPI keeps small advice print legible for OCR.
	prefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm", "-r", "300", "-jpeg", path, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("pdftoppm failed: %v (output: %s)", err, string(out))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("reading temp dir: %w", err)
	}
	var images []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".jpg") {
			images = append(images, filepath.Join(tmpDir, e.Name()))
		}
	}
	sort.Strings(images)

	if len(images) == 0 {
		cleanup()
		return nil, nil, fmt.Errorf("pdftoppm produced no page images")
	}
	return images, cleanup, nil
}
