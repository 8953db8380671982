package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/transform90/internal/store"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the progression event log",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kinds, _ := cmd.Flags().GetStringSlice("kind")

		svc, st, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		opts := store.QueryOpts{Limit: limit}
		for _, k := range kinds {
			opts.Kinds = append(opts.Kinds, store.EventKind(k))
		}
		events, err := svc.Events(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No events found.")
			return nil
		}
		fmt.Fprintf(out, "%-5s  %-19s  %-15s  %-4s  %s\n", "Seq", "Timestamp", "Kind", "Day", "Detail")
		fmt.Fprintln(out, strings.Repeat("─", 70))
		for _, e := range events {
			fmt.Fprintf(out, "%-5d  %-19s  %-15s  %-4d  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Kind,
				e.Day,
				e.Detail,
			)
		}
		return nil
	},
}

func init() {
	logCmd.Flags().Int("limit", 50, "Maximum number of events")
	logCmd.Flags().StringSlice("kind", nil, "Only these kinds (day-completed, level-up, ...)")
}
