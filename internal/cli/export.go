package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/ritmo/internal/export"
)

func newExportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export the day's data to JSON or CSV",
		Args:  cobra.ExactArgs(1),
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

			path := args[0]
			f := format
			if f == "" {
				switch {
				case strings.HasSuffix(path, ".csv"):
					f = "csv"
				default:
					f = "json"
				}
			}

			switch f {
			case "json":
				err = export.ToJSON(snap, path)
			case "csv":
				err = export.ToCSV(snap, path)
			default:
				return fmt.Errorf("unknown format %q (want json or csv)", f)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transaction(s) to %s\n", len(snap.Transactions), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "export format: json or csv (inferred from extension when empty)")
	return cmd
}
