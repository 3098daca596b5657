package parser

import "regexp"

// pageSentinelPattern matches the page-boundary markers that the OCR
// acquisition layer embeds in raw text ("--- Page N ---").
var pageSentinelPattern = regexp.MustCompile(`--- Page (\d+) ---`)

// chunkMarkerPattern starts a new chunk at every advice header and page
// boundary. The marker text stays at the head of its chunk so dialect
// extractors can re-derive the transaction type from it.
var chunkMarkerPattern = regexp.MustCompile(
	`(?i)DEBIT ADVICE|CREDIT ADVICE|RECEIPT NO\.|Shipment Receipt|--- Page \d+ ---`)

// Chunk is a contiguous span of the raw text corresponding to one
// candidate advice section. Start is its byte offset in the source text,
// used for page lookup.
type Chunk struct {
	Start int
	Text  string
}

// SplitChunks splits raw OCR text into advice-sized chunks. Leading text
// before the first marker becomes its own header-only chunk; a document
// with no markers at all yields a single chunk spanning the whole text.
func SplitChunks(text string) []Chunk {
	locs := chunkMarkerPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []Chunk{{Start: 0, Text: text}}
	}

	var chunks []Chunk
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			chunks = append(chunks, Chunk{Start: prev, Text: text[prev:loc[0]]})
		}
		prev = loc[0]
	}
	chunks = append(chunks, Chunk{Start: prev, Text: text[prev:]})
	return chunks
}

type pageMark struct {
	offset int
	page   int
}

// PageIndex maps byte offsets in the raw text to page numbers.
type PageIndex struct {
	marks []pageMark
}

// BuildPageIndex scans the raw text once for page sentinels. Text with no
// sentinels is treated as a single page 1.
func BuildPageIndex(text string) *PageIndex {
	idx := &PageIndex{}
	for _, m := range pageSentinelPattern.FindAllStringSubmatchIndex(text, -1) {
		page := 0
		for _, c := range text[m[2]:m[3]] {
			page = page*10 + int(c-'0')
		}
		idx.marks = append(idx.marks, pageMark{offset: m[0], page: page})
	}
	return idx
}

// PageAt returns the page number of the last sentinel at or before the
// given offset, defaulting to page 1.
func (idx *PageIndex) PageAt(offset int) int {
	page := 1
	for _, m := range idx.marks {
		if m.offset > offset {
			break
		}
		page = m.page
	}
	return page
}
