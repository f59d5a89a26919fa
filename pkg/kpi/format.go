package kpi

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// NotAvailable is the placeholder shown wherever a figure cannot be produced.
const NotAvailable = "N/A"

var (
	million  = decimal.NewFromInt(1_000_000)
	thousand = decimal.NewFromInt(1_000)
)

// FormatMagnitude scales a raw figure for compact display.
//
//	16240   -> "16.2K"
//	1250000 -> "1.3M"
//	245.8   -> "245.8"
//	450     -> "450"
//
// Whole numbers below one thousand are treated as counts and thousands-grouped,
// anything else gets one decimal. Rounding is half away from zero.
func FormatMagnitude(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NotAvailable
	}

	d := decimal.NewFromFloat(value)
	abs := math.Abs(value)
	switch {
	case abs >= 1_000_000:
		return d.Div(million).StringFixed(1) + "M"
	case abs >= 1_000:
		return d.Div(thousand).StringFixed(1) + "K"
	case value == math.Trunc(value):
		return humanize.Comma(int64(value))
	default:
		return d.StringFixed(1)
	}
}

// FormatPercent renders a signed one-decimal percentage such as "+0.7%" or "-22.0%".
func FormatPercent(percent float64) string {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return NotAvailable
	}
	s := decimal.NewFromFloat(percent).StringFixed(1)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s + "%"
}

// FormatFixed renders value with the given number of decimals, without grouping.
func FormatFixed(value float64, places int32) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NotAvailable
	}
	return decimal.NewFromFloat(value).StringFixed(places)
}

// FormatCount rounds value to an integer and groups thousands ("8,980").
func FormatCount(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NotAvailable
	}
	return humanize.Comma(decimal.NewFromFloat(value).Round(0).IntPart())
}
