package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/spf13/cobra"
)

type tableCount struct {
	Table domain.Table `json:"table"`
	Count int64        `json:"count"`
	Error string       `json:"error,omitempty"`
}

func (c *CLI) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [table...]",
		Short: "Print row counts per table",
		Long:  "Print row counts for the given tables, or for every table when none is named.",
		RunE: func(cmd *cobra.Command, args []string) error {
			tables := domain.Tables
			if len(args) > 0 {
				tables = make([]domain.Table, 0, len(args))
				for _, arg := range args {
					t := domain.Table(arg)
					if !t.Valid() {
						return fmt.Errorf("unknown table %q", arg)
					}
					tables = append(tables, t)
				}
			}

			backend, err := c.openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			counts := make([]tableCount, 0, len(tables))
			failed := false
			for _, t := range tables {
				n, err := backend.Count(cmd.Context(), t)
				row := tableCount{Table: t, Count: n}
				if err != nil {
					row.Error = err.Error()
					failed = true
				}
				counts = append(counts, row)
			}

			out := cmd.OutOrStdout()
			if c.jsonOutput {
				if err := c.outputJSON(out, counts); err != nil {
					return err
				}
			} else {
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "TABLE\tROWS")
				for _, row := range counts {
					if row.Error != "" {
						fmt.Fprintf(w, "%s\terror: %s\n", row.Table, row.Error)
						continue
					}
					fmt.Fprintf(w, "%s\t%d\n", row.Table, row.Count)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			if failed {
				return fmt.Errorf("some counts failed")
			}
			return nil
		},
	}
}
