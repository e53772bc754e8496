package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/takaflow/taka/internal/cli"
)

// barWidth is how many cells the 100% analytics bar spans.
const barWidth = 30

func analyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show expense breakdown by category",
		RunE:  runAnalytics,
	}
}

func runAnalytics(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, cleanup, err := openUnlockedLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	shares, err := store.CategoryBreakdown()
	if err != nil {
		return fmt.Errorf("failed to compute breakdown: %w", err)
	}

	fmt.Println(cli.FormatTitle(cli.ChartIcon + " Analytics")) //nolint:forbidigo // User-facing output
	fmt.Println()                                              //nolint:forbidigo // User-facing output

	if len(shares) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No expense data available.")) //nolint:forbidigo // User-facing output
		return nil
	}

	for _, share := range shares {
		filled := share.Percent * barWidth / 100
		if filled > barWidth {
			filled = barWidth
		}
		bar := cli.InfoStyle.Render(strings.Repeat("█", filled)) +
			cli.SubtleStyle.Render(strings.Repeat("░", barWidth-filled))

		fmt.Printf("%-28s %s %s (%d%%)\n", //nolint:forbidigo // User-facing output
			cli.BoldStyle.Render(share.Category),
			bar,
			formatAmount(store, share.Amount),
			share.Percent)
	}

	return nil
}
