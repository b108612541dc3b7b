package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/ritmo/internal/export"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Replace the stored data with a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			snap, err := export.FromJSON(args[0])
			if err != nil {
				return err
			}

			if err := s.ImportSnapshot(snap); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transaction(s) from %s\n", len(snap.Transactions), args[0])
			return nil
		},
	}

	return cmd
}
