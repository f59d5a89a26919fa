package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/sdboard/sdboard/pkg/kpi"
)

var varianceCmd = &cobra.Command{
	Use:   "variance",
	Short: "Computes the percent variance of a value against its reference.",
	Example: `  sdboard variance --value 46.1 --reference 45.8
  sdboard variance --value -6100 --reference -5000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		value, _ := cmd.Flags().GetFloat64("value")
		reference, _ := cmd.Flags().GetFloat64("reference")

		v, err := kpi.ComputeVariance(value, reference)
		if errors.Is(err, kpi.ErrDivisionUndefined) {
			return fmt.Errorf("variance against a zero reference is undefined")
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s, %s)\n",
			v.Direction.Glyph(), kpi.FormatPercent(v.PercentDelta), v.Direction, v.Tier)
		return nil
	},
}

var severityCmd = &cobra.Command{
	Use:   "severity",
	Short: "Prints the severity tier and colour of a percent variance.",
	RunE: func(cmd *cobra.Command, args []string) error {
		percent, _ := cmd.Flags().GetFloat64("percent")
		t := kpi.ClassifySeverity(percent)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", t, t.Color())
		return nil
	},
}

var formatCmd = &cobra.Command{
	Use:   "format <value>",
	Short: "Formats a raw figure the way KPI cards display it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), kpi.FormatMagnitude(value))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(varianceCmd)
	varianceCmd.Flags().Float64("value", 0, "Observed value")
	varianceCmd.Flags().Float64("reference", 0, "Budget or prior value")
	varianceCmd.MarkFlagRequired("value")
	varianceCmd.MarkFlagRequired("reference")

	rootCmd.AddCommand(severityCmd)
	severityCmd.Flags().Float64("percent", 0, "Percent variance")
	severityCmd.MarkFlagRequired("percent")

	rootCmd.AddCommand(formatCmd)
}
