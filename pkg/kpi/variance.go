// Package kpi turns raw metric figures into labelled, colour-coded comparison units.
//
// A value is compared against a reference (a budget, a target or a prior period) to
// produce a signed percentage variance, a direction and a severity tier. Every function
// in this package is pure and safe for concurrent use.
package kpi

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDivisionUndefined is returned when a variance is requested against a zero reference.
	ErrDivisionUndefined = errors.New("variance undefined: reference is zero")
	// ErrMissingHistoricalEntry is returned when a period label was not supplied.
	ErrMissingHistoricalEntry = errors.New("historical entry not supplied")
)

// Direction tells whether a value moved up or down against its reference.
// It says nothing about whether that movement is good for the metric.
type Direction int

const (
	Improved Direction = iota
	Worsened
)

func (d Direction) String() string {
	if d == Worsened {
		return "worsened"
	}
	return "improved"
}

// Glyph returns the arrow drawn next to a delta.
func (d Direction) Glyph() string {
	if d == Worsened {
		return "↓"
	}
	return "↑"
}

// MarshalText renders the direction as its name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Observation is a named point-in-time measurement.
type Observation struct {
	Name  string
	Value float64
	// Unit is a display suffix only ("%", "M XOF", "").
	Unit string
}

// VarianceResult is the outcome of comparing one value with one reference.
type VarianceResult struct {
	PercentDelta float64   `json:"percent_delta"`
	Direction    Direction `json:"direction"`
	Tier         Tier      `json:"tier"`
}

// ComputeVariance returns (value - reference) / |reference| * 100 with its direction and tier.
//
// The absolute reference keeps the sign of the actual movement when the reference
// itself is negative: -5000 against a budget of -6000 is a +16.67% improvement.
// A zero reference yields ErrDivisionUndefined.
func ComputeVariance(value, reference float64) (VarianceResult, error) {
	if reference == 0 {
		return VarianceResult{}, ErrDivisionUndefined
	}

	delta := (value - reference) / math.Abs(reference) * 100

	dir := Improved
	if delta < 0 {
		dir = Worsened
	}

	return VarianceResult{
		PercentDelta: delta,
		Direction:    dir,
		Tier:         ClassifySeverity(delta),
	}, nil
}

// Comparison bundles a variance with the historical deltas shown beside it.
type Comparison struct {
	Observation Observation
	Reference   float64
	Variance    VarianceResult
	History     HistoricalDeltas
}

// Compare computes the variance of obs against reference and attaches history unchanged.
func Compare(obs Observation, reference float64, history HistoricalDeltas) (Comparison, error) {
	v, err := ComputeVariance(obs.Value, reference)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{
		Observation: obs,
		Reference:   reference,
		Variance:    v,
		History:     history,
	}, nil
}

// UnmarshalText parses a direction name.
func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "improved":
		*d = Improved
	case "worsened":
		*d = Worsened
	default:
		return fmt.Errorf("unknown direction %q", b)
	}
	return nil
}
