package kpi

import (
	"fmt"
	"sort"
)

// Common period labels.
const (
	PeriodYTD = "YTD"
	PeriodWoW = "WoW"
	PeriodMoM = "MoM"
	PeriodDoD = "DoD"
	PeriodYoY = "YoY"
)

// HistoricalDeltas maps a period label to an externally supplied display value
// ("+2.3%", "5.12B", "+240"). Values are shown as given and never recomputed.
type HistoricalDeltas map[string]string

// Lookup returns the value supplied for label.
func (h HistoricalDeltas) Lookup(label string) (string, error) {
	v, ok := h[label]
	if !ok {
		return "", fmt.Errorf("%s: %w", label, ErrMissingHistoricalEntry)
	}
	return v, nil
}

// Labels returns the supplied labels in sorted order.
func (h HistoricalDeltas) Labels() []string {
	labels := make([]string, 0, len(h))
	for k := range h {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return labels
}
