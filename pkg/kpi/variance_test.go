package kpi

import (
	"errors"
	"math"
	"testing"
)

func TestComputeVariance(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		reference float64
		want      float64
		dir       Direction
		tier      Tier
	}{
		{"above budget", 110, 100, 10, Improved, Strong},
		{"below budget", 90, 100, -10, Worsened, Adverse},
		{"on budget", 100, 100, 0, Improved, Marginal},
		{"negative reference improves", -5000, -6000, 16.666666666666668, Improved, Strong},
		{"negative reference worsens", -6100, -5000, -22, Worsened, Adverse},
		{"small upside", 46.10, 45.80, 0.6550218340611378, Improved, Marginal},
		{"moderate", 103, 100, 3, Improved, Moderate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeVariance(tt.value, tt.reference)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got.PercentDelta-tt.want) > 1e-9 {
				t.Fatalf("PercentDelta = %v, want %v", got.PercentDelta, tt.want)
			}
			if got.Direction != tt.dir {
				t.Fatalf("Direction = %v, want %v", got.Direction, tt.dir)
			}
			if got.Tier != tt.tier {
				t.Fatalf("Tier = %v, want %v", got.Tier, tt.tier)
			}
		})
	}
}

func TestComputeVarianceFormula(t *testing.T) {
	pairs := [][2]float64{
		{1, 3}, {-7.5, 2.25}, {1e9, -3e8}, {0, 42}, {0.001, -0.002}, {12345.678, 12000},
	}
	for _, p := range pairs {
		got, err := ComputeVariance(p[0], p[1])
		if err != nil {
			t.Fatalf("ComputeVariance(%v, %v): %v", p[0], p[1], err)
		}
		want := (p[0] - p[1]) / math.Abs(p[1]) * 100
		if math.Abs(got.PercentDelta-want) > 1e-9 {
			t.Fatalf("ComputeVariance(%v, %v) = %v, want %v", p[0], p[1], got.PercentDelta, want)
		}
		if (got.PercentDelta >= 0) != (got.Direction == Improved) {
			t.Fatalf("direction %v does not match delta %v", got.Direction, got.PercentDelta)
		}
	}
}

func TestComputeVarianceZeroReference(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 1e12} {
		_, err := ComputeVariance(v, 0)
		if !errors.Is(err, ErrDivisionUndefined) {
			t.Fatalf("ComputeVariance(%v, 0) error = %v, want ErrDivisionUndefined", v, err)
		}
	}
	// negative zero is still zero
	if _, err := ComputeVariance(5, math.Copysign(0, -1)); !errors.Is(err, ErrDivisionUndefined) {
		t.Fatalf("expected ErrDivisionUndefined for -0, got %v", err)
	}
}

func TestComputeVarianceIdempotent(t *testing.T) {
	a, err := ComputeVariance(46.10, 45.80)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ComputeVariance(46.10, 45.80)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("results differ: %+v vs %+v", a, b)
	}
}

func TestCompare(t *testing.T) {
	history := HistoricalDeltas{PeriodYTD: "+2.3%", PeriodWoW: "-0.4%"}
	obs := Observation{Name: "Net Revenue", Value: -6100, Unit: "M XOF"}

	c, err := Compare(obs, -5000, history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Variance.Tier != Adverse || c.Variance.Direction != Worsened {
		t.Fatalf("got %+v, want adverse/worsened", c.Variance)
	}
	if got := FormatPercent(c.Variance.PercentDelta); got != "-22.0%" {
		t.Fatalf("FormatPercent = %q, want -22.0%%", got)
	}
	if c.History[PeriodYTD] != "+2.3%" {
		t.Fatalf("history not passed through: %v", c.History)
	}

	if _, err := Compare(obs, 0, history); !errors.Is(err, ErrDivisionUndefined) {
		t.Fatalf("expected ErrDivisionUndefined, got %v", err)
	}
}

func TestDirectionText(t *testing.T) {
	if Improved.Glyph() != "↑" || Worsened.Glyph() != "↓" {
		t.Fatal("unexpected glyphs")
	}
	b, _ := Worsened.MarshalText()
	if string(b) != "worsened" {
		t.Fatalf("MarshalText = %q", b)
	}
}
