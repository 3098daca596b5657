package parser

import (
	"testing"

	"github.com/insightdelivered/cashflow-ocr/internal/models"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected models.BankType
	}{
		{
			name:     "detects Krungthai",
			text:     "For KRUNGTHAI BANK PUBLIC COMPANY LIMITED\nSingapore Branch",
			expected: models.BankKrungthai,
		},
		{
			name:     "detects Krungthai with space",
			text:     "For KRUNG THAI BANK PUBLIC COMPANY LIMITED",
			expected: models.BankKrungthai,
		},
		{
			name:     "detects CIMB",
			text:     "hal CIMB BANK\nCIMB BANK SINGAPORE\nTRADE SERVICES",
			expected: models.BankCIMB,
		},
		{
			name:     "case insensitive",
			text:     "some cimb bank footer",
			expected: models.BankCIMB,
		},
		{
			name:     "unknown bank falls back to generic",
			text:     "Some Unknown Bank\nDEBIT ADVICE",
			expected: models.BankGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		bank     models.BankType
		wantName string
	}{
		{models.BankKrungthai, "Krungthai"},
		{models.BankCIMB, "CIMB"},
		{models.BankGeneric, ""},
		{"unknown", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.bank), func(t *testing.T) {
			p := New(tt.bank)
			if p.BankName() != tt.wantName {
				t.Errorf("got %q, want %q", p.BankName(), tt.wantName)
			}
		})
	}
}

func TestDetectTransaction(t *testing.T) {
	tests := []struct {
		text     string
		expected models.TransactionType
	}{
		{"DEBIT ADVICE", models.Debit},
		{"debit  advice", models.Debit},
		{"DEBITADVICE", models.Debit},
		{"CREDIT ADVICE", models.Credit},
		{"BALANCE BROUGHT FORWARD", models.BalanceForward},
		{"B/F BALANCE", models.BalanceForward},
		{"Shipment Receipt with amount 1,000.00", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := detectTransaction(tt.text); got != tt.expected {
				t.Errorf("detectTransaction(%q): got %q, want %q", tt.text, got, tt.expected)
			}
		})
	}
}
