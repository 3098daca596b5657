package parser

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"01-Jan-2024", "2024-01-01"},
		{"15-Feb-2025", "2025-02-15"},
		{"02-Dec-2025", "2025-12-02"},
		{"05/12/2025", "2025-12-05"},
		{"1/5/2024", "2024-05-01"},
		{"23-12-2025", "2025-12-23"},
		{"January 01, 2024", "2024-01-01"},
		{"Dec 31, 2023", "2023-12-31"},
		{"2024-05-20", "2024-05-20"},
		{"2024/05/20", "2024-05-20"},
		{"2024-05-20 14:30:00", "2024-05-20"},
		{"", ""},
		{"  ", ""},
		{"not a date", "not a date"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeDate(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeDate(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeDateIdempotent(t *testing.T) {
	inputs := []string{
		"01-Jan-2024", "05/12/2025", "December 2, 2025", "2024-05-20", "garbage",
	}
	for _, in := range inputs {
		once := NormalizeDate(in)
		twice := NormalizeDate(once)
		if once != twice {
			t.Errorf("NormalizeDate not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeDateISOPassthrough(t *testing.T) {
	if got := NormalizeDate("2024-05-20"); got != "2024-05-20" {
		t.Errorf("ISO input changed: got %q", got)
	}
}
