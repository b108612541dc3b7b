package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/ritmo/internal/core"
)

func newAwardsCmd() *cobra.Command {
	var showLocked bool

	cmd := &cobra.Command{
		Use:   "awards",
		Short: "List unlocked awards",
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

			set := core.EvaluateAwards(snap)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Awards: %d/%d unlocked\n\n", len(set.Unlocked), core.CatalogSize())

			for _, card := range core.FormatAwards(set, showLocked) {
				if card.Locked {
					fmt.Fprintf(out, "  🔒 %-20s %s\n", card.Title, card.Detail)
					continue
				}
				fmt.Fprintf(out, "  %s %-20s %s\n", card.Icon, card.Title, card.Short)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showLocked, "locked", false, "also list locked awards with progress hints")
	return cmd
}
