package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/sdboard/sdboard/pkg/kpi"
	"github.com/sdboard/sdboard/pkg/source"
)

// cardsCmd represents the cards command
var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Prints the KPI cards of a dashboard page compared against their budgets.",
	Long:  "Prints the KPI cards of a dashboard page compared against their budgets, using the sample data.",
	RunE: func(cmd *cobra.Command, args []string) error {
		pageName, _ := cmd.Flags().GetString("page")
		page, err := source.ParsePage(pageName)
		if err != nil {
			return fmt.Errorf("unknown page %q", pageName)
		}

		asOf, err := reportDate()
		if err != nil {
			return err
		}
		if asOf.IsZero() {
			asOf = time.Now()
		}
		src := source.NewSample(viper.GetUint64("data.seed"), asOf)
		cards := src.Cards(page)
		if len(cards) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Page %s has no budgeted KPI cards.\n", page)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Report date: %s\n\n", src.AsOf().Format("02 Jan 2006"))
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "KPI\tVALUE\tBUDGET\tVARIANCE\tTIER\tYTD\tWOW\tMOM\t")

		var undefined int
		for _, c := range cards {
			variance, tier := kpi.NotAvailable, "-"
			if cmp, err := c.Compare(); err == nil {
				variance = kpi.FormatPercent(cmp.Variance.PercentDelta)
				tier = cmp.Variance.Tier.String()
			} else {
				undefined++
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				c.Label,
				kpi.FormatMagnitude(c.Value),
				kpi.FormatMagnitude(c.Budget),
				variance,
				tier,
				historyValue(c.History, kpi.PeriodYTD),
				historyValue(c.History, kpi.PeriodWoW),
				historyValue(c.History, kpi.PeriodMoM),
			)
		}

		fmt.Fprintln(w, " \t \t \t \t \t \t \t \t")
		fmt.Fprintf(w, "CARDS\t%d\t \t%d N/A\t \t \t \t \t\n", len(cards), undefined)

		return w.Flush()
	},
}

func historyValue(h kpi.HistoricalDeltas, period string) string {
	v, err := h.Lookup(period)
	if err != nil {
		return kpi.NotAvailable
	}
	return v
}

func init() {
	rootCmd.AddCommand(cardsCmd)
	cardsCmd.Flags().StringP("page", "p", string(source.PageOverview), "Dashboard page")
}
