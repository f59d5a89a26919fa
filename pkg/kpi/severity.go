package kpi

import "fmt"

// Tier is one of four ordered severity bands used to colour percentages.
type Tier int

const (
	Adverse Tier = iota
	Marginal
	Moderate
	Strong
)

// Band boundaries. Every table and card uses the same values.
const (
	StrongThreshold   = 5.0
	ModerateThreshold = 2.0
	MarginalThreshold = -2.0
)

// ClassifySeverity maps a percentage onto its band. Bands are half-open and
// evaluated from the top: [5, +inf) Strong, [2, 5) Moderate, [-2, 2) Marginal,
// (-inf, -2) Adverse.
func ClassifySeverity(percent float64) Tier {
	switch {
	case percent >= StrongThreshold:
		return Strong
	case percent >= ModerateThreshold:
		return Moderate
	case percent >= MarginalThreshold:
		return Marginal
	default:
		return Adverse
	}
}

func (t Tier) String() string {
	switch t {
	case Strong:
		return "strong"
	case Moderate:
		return "moderate"
	case Marginal:
		return "marginal"
	default:
		return "adverse"
	}
}

// Color returns the fill colour a tier is rendered with.
func (t Tier) Color() string {
	switch t {
	case Strong:
		return "#107C10"
	case Moderate:
		return "#FFA500"
	case Marginal:
		return "#FFD700"
	default:
		return "#D13438"
	}
}

// MarshalText renders the tier as its name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a tier name.
func (t *Tier) UnmarshalText(b []byte) error {
	for _, c := range []Tier{Adverse, Marginal, Moderate, Strong} {
		if c.String() == string(b) {
			*t = c
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", b)
}
