// Package extractor acquires page-tagged raw text from advice PDFs. The
// extraction engine is agnostic to which acquisition path produced the
// text; everything here funnels into ComposeRawText so downstream code
// sees one page-marked blob regardless of method.
package extractor

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ExtractText pulls per-page text from a PDF. It tries the embedded text
// layer first, then the external pdftotext command, then Tesseract OCR —
// scanned advices have no text layer at all, so the OCR path is the
// normal one for this corpus.
func ExtractText(ctx context.Context, path, lang string) ([]string, error) {
	pages, libErr := extractTextLayer(path)
	if libErr == nil && isReadableText(pages) {
		return pages, nil
	}

	pages, popplerErr := extractWithPdftotext(ctx, path)
	if popplerErr == nil && isReadableText(pages) {
		return pages, nil
	}

	pages, ocrErr := ExtractTextOCR(ctx, path, lang)
	if ocrErr == nil && len(pages) > 0 {
		return pages, nil
	}

	return nil, fmt.Errorf("no readable text from %q: text layer (%v), pdftotext (%v), ocr (%v)",
		path, libErr, popplerErr, ocrErr)
}

// extractTextLayer reads the embedded text layer via the pdf library.
// The library panics on some malformed files, so recover into an error.
func extractTextLayer(path string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.TrimSpace(text))
	}
	return pages, nil
}

// extractWithPdftotext shells out to poppler-utils, one page at a time
// so page boundaries survive.
func extractWithPdftotext(ctx context.Context, path string) ([]string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %w", err)
	}

	numPages := pageCount(ctx, path)
	var pages []string
	for i := 1; i <= numPages; i++ {
		n := strconv.Itoa(i)
		out, err := exec.CommandContext(ctx, "pdftotext", "-layout", "-f", n, "-l", n, path, "-").Output()
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.TrimSpace(string(out)))
	}
	if totalTextLen(pages) == 0 {
		return nil, fmt.Errorf("pdftotext produced no output")
	}
	return pages, nil
}

// pageCount asks pdfinfo, defaulting to 1 when unavailable.
func pageCount(ctx context.Context, path string) int {
	out, err := exec.CommandContext(ctx, "pdfinfo", path).Output()
	if err != nil {
		return 1
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, "Pages:") {
			if n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:"))); err == nil && n > 0 {
				return n
			}
		}
	}
	return 1
}

func totalTextLen(pages []string) int {
	total := 0
	for _, p := range pages {
		total += len(strings.TrimSpace(p))
	}
	return total
}

// isReadableText rejects garbage from identity-encoded fonts: the pages
// must carry some minimum volume of text and a majority of readable
// characters. Thai script counts as readable — the corpus is bilingual.
func isReadableText(pages []string) bool {
	if totalTextLen(pages) <= 50 {
		return false
	}
	total, readable := 0, 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				unicode.Is(unicode.Thai, r) ||
				strings.ContainsRune(`.,-/:;()'"฿$%&#`, r) {
				readable++
			}
		}
	}
	return total > 0 && float64(readable)/float64(total) > 0.6
}
