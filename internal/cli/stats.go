package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/sadopc/ritmo/internal/core"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print today's stats without opening the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			snap, err := s.Snapshot()
			if err != nil {
				return err
			}
			goal, err := s.DailyGoal()
			if err != nil {
				return err
			}

			derived := core.ComputeDerived(snap)
			stats := core.ComputeStats(snap.Transactions)
			out := cmd.OutOrStdout()

			saldo := int64(math.Round(derived.Saldo))
			margin := "out of margin"
			if derived.EndedWithinMargin {
				margin = "within margin"
			}
			fmt.Fprintf(out, "Balance:        %s (%s)\n", core.FormatSigned(saldo), margin)
			fmt.Fprintf(out, "Transactions:   %d/%d\n", stats.Count, goal)
			if stats.Count == 0 {
				return nil
			}

			fmt.Fprintf(out, "Avg difference: %s\n", core.FormatSigned(stats.AvgDifference))
			fmt.Fprintf(out, "Total worked:   %s\n", core.FormatDuration(stats.SumTimeSpent))
			fmt.Fprintf(out, "P90 |diff|:     %s\n", core.FormatShort(derived.P90Abs))
			fmt.Fprintf(out, "Returns:        %d\n", derived.ReturnCount)
			if snap.ShowComplexa {
				fmt.Fprintf(out, "Complex:        %d\n", derived.ComplexCount)
			}
			if derived.NearStreak > 0 {
				fmt.Fprintf(out, "Streak:         %d within 1min\n", derived.NearStreak)
			}

			if len(stats.TopItems) > 0 {
				fmt.Fprintln(out, "\nMost worked items:")
				for _, item := range stats.TopItems {
					fmt.Fprintf(out, "  %-24s ×%d\n", item.Item, item.Count)
				}
			}

			advice := core.BuildAdvice(snap.Transactions, snap.BalanceSeconds)
			if len(advice.Suggestions) > 0 {
				fmt.Fprintln(out, "\nAdvice:")
				for _, sg := range advice.Suggestions {
					fmt.Fprintf(out, "  - %s\n", sg)
				}
			}
			if len(advice.FunFacts) > 0 {
				fmt.Fprintln(out, "\nFun facts:")
				for _, f := range advice.FunFacts {
					fmt.Fprintf(out, "  - %s\n", f)
				}
			}

			return nil
		},
	}

	return cmd
}
