package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/sdboard/sdboard/pkg/kpi"
	"github.com/sdboard/sdboard/pkg/source"
)

func main() {
	// Usage: go run *.go -page airtime -seed 42

	pageFlag := flag.String("page", "overview", "Dashboard page")
	seedFlag := flag.Uint64("seed", 42, "Seed of the sample data")

	// Parse the command-line flags
	flag.Parse()

	page, err := source.ParsePage(*pageFlag)
	if err != nil {
		fmt.Println("Unknown page. Available pages:", source.Pages)
		return
	}

	// Any MetricsSource works, the sample one is deterministic for a given seed
	src := source.NewSample(*seedFlag, time.Now())

	for _, card := range src.Cards(page) {
		cmp, err := card.Compare()
		if err != nil {
			fmt.Println(card.Label, kpi.NotAvailable)
			continue
		}
		fmt.Println(card.Label, kpi.FormatMagnitude(card.Value), cmp.Variance.Direction.Glyph(), kpi.FormatPercent(cmp.Variance.PercentDelta), cmp.Variance.Tier)
	}
}
