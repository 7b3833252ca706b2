package record

import (
	"math"
	"testing"
)

func TestParseLeadingFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12", 12, true},
		{"  3.5", 3.5, true},
		{"12abc", 12, true},
		{"1.2.3", 1.2, true},
		{".5", 0.5, true},
		{"5.", 5, true},
		{"-7.25", -7.25, true},
		{"1e3", 1000, true},
		{"1e", 1, true},
		{"12-3", 12, true},
		{"-", 0, false},
		{".", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLeadingFloat(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseLeadingFloat(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if v, ok := ParseLeadingFloat("-Infinity"); !ok || !math.IsInf(v, -1) {
		t.Errorf("-Infinity = %v, %v", v, ok)
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		in, want string
		ok       bool
	}{
		{"$1,234.56", "1234.56", true},
		{"-42", "42", true},
		{"(19.99)", "19.99", true},
		{"EUR -0.5", "0.5", true},
		{"free", "free", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeAmount(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeAmount(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormatFixed(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{42, "42.00"},
		{0, "0.00"},
		{1234.56, "1234.56"},
		{0.125, "0.13"},
		{2.5, "2.50"},
		{1.005, "1.00"}, // 1.005 is stored slightly below the tie
		{-0.001, "-0.00"},
		{-3.14159, "-3.14"},
		{0.07, "0.07"},
	}
	for _, tt := range tests {
		if got := FormatFixed(tt.in, 2); got != tt.want {
			t.Errorf("FormatFixed(%v, 2) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := FormatFixed(7.6, 0); got != "8" {
		t.Errorf("FormatFixed(7.6, 0) = %q", got)
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount("42"); got != "42.00" {
		t.Errorf("FormatAmount(42) = %q", got)
	}
	if got := FormatAmount("pending"); got != "pending" {
		t.Errorf("FormatAmount(pending) = %q", got)
	}
}
