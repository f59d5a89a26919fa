package kpi

import (
	"errors"
	"math"
	"testing"
)

func TestFormatMagnitude(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{16240, "16.2K"},
		{245.8, "245.8"},
		{1250000, "1.3M"},
		{8980000, "9.0M"},
		{1000, "1.0K"},
		{999, "999"},
		{450, "450"},
		{0, "0"},
		{46.1, "46.1"},
		{-6100, "-6.1K"},
		{-2500000, "-2.5M"},
		{math.NaN(), "N/A"},
		{math.Inf(1), "N/A"},
	}

	for _, tt := range tests {
		if got := FormatMagnitude(tt.in); got != tt.want {
			t.Errorf("FormatMagnitude(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.6550218340611378, "+0.7%"},
		{-22, "-22.0%"},
		{16.666666666666668, "+16.7%"},
		{0, "+0.0%"},
		{2.25, "+2.3%"},
		{math.NaN(), "N/A"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.in); got != tt.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCountAndFixed(t *testing.T) {
	if got := FormatCount(8980.4); got != "8,980" {
		t.Errorf("FormatCount = %q", got)
	}
	if got := FormatCount(1234567); got != "1,234,567" {
		t.Errorf("FormatCount = %q", got)
	}
	if got := FormatFixed(3.14159, 2); got != "3.14" {
		t.Errorf("FormatFixed = %q", got)
	}
}

func TestHistoricalDeltasLookup(t *testing.T) {
	h := HistoricalDeltas{PeriodMoM: "+1.1%", PeriodYTD: "5.12B"}

	v, err := h.Lookup(PeriodYTD)
	if err != nil || v != "5.12B" {
		t.Fatalf("Lookup(YTD) = %q, %v", v, err)
	}
	if _, err := h.Lookup(PeriodWoW); !errors.Is(err, ErrMissingHistoricalEntry) {
		t.Fatalf("expected ErrMissingHistoricalEntry, got %v", err)
	}

	var empty HistoricalDeltas
	if _, err := empty.Lookup(PeriodYTD); !errors.Is(err, ErrMissingHistoricalEntry) {
		t.Fatalf("nil map lookup: %v", err)
	}

	labels := h.Labels()
	if len(labels) != 2 || labels[0] != PeriodMoM || labels[1] != PeriodYTD {
		t.Fatalf("Labels = %v", labels)
	}
}
