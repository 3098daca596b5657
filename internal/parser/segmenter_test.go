package parser

import (
	"strings"
	"testing"
)

func TestSplitChunksNoMarkers(t *testing.T) {
	text := "just some header text\nwith no advice markers at all"
	chunks := SplitChunks(text)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Start != 0 || chunks[0].Text != text {
		t.Errorf("chunk should span the whole text")
	}
}

func TestSplitChunksLeadingHeader(t *testing.T) {
	text := "KRUNGTHAI BANK\nA/C NO: 123-456-789\nDEBIT ADVICE\nTotal Amount : 1,000.00"
	chunks := SplitChunks(text)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if !strings.HasPrefix(chunks[1].Text, "DEBIT ADVICE") {
		t.Errorf("marker must stay at the head of its chunk, got %q", chunks[1].Text)
	}
	if chunks[0].Start != 0 {
		t.Errorf("header chunk should start at 0, got %d", chunks[0].Start)
	}
	if chunks[1].Start != strings.Index(text, "DEBIT ADVICE") {
		t.Errorf("chunk start offset mismatch")
	}
}

func TestSplitChunksMultipleAdvices(t *testing.T) {
	text := "DEBIT ADVICE first\nCREDIT ADVICE second\nShipment Receipt third"
	chunks := SplitChunks(text)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, want := range []string{"DEBIT ADVICE", "CREDIT ADVICE", "Shipment Receipt"} {
		if !strings.HasPrefix(chunks[i].Text, want) {
			t.Errorf("chunk %d: expected prefix %q, got %q", i, want, chunks[i].Text)
		}
	}
}

func TestSplitChunksCaseInsensitive(t *testing.T) {
	chunks := SplitChunks("header\ndebit advice lower case")
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
}

func TestPageIndex(t *testing.T) {
	text := "--- Page 1 ---\nfirst page text\n--- Page 2 ---\nsecond page text\n--- Page 3 ---\nlast"
	idx := BuildPageIndex(text)

	tests := []struct {
		offset   int
		expected int
	}{
		{0, 1},
		{strings.Index(text, "first"), 1},
		{strings.Index(text, "second"), 2},
		{strings.Index(text, "--- Page 2 ---"), 2},
		{strings.Index(text, "last"), 3},
		{len(text) - 1, 3},
	}
	for _, tt := range tests {
		if got := idx.PageAt(tt.offset); got != tt.expected {
			t.Errorf("PageAt(%d): got %d, want %d", tt.offset, got, tt.expected)
		}
	}
}

func TestPageIndexNoSentinels(t *testing.T) {
	idx := BuildPageIndex("no page markers here")
	if got := idx.PageAt(10); got != 1 {
		t.Errorf("expected default page 1, got %d", got)
	}
}
