package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/transform90/internal/analytics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress statistics and insights",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		r := svc.Report()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd.OutOrStdout(), r)
		}
		printReport(cmd.OutOrStdout(), r)
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print as JSON")
}

func printReport(w io.Writer, r analytics.Report) {
	if r.TotalDays == 0 {
		fmt.Fprintln(w, "No days recorded yet.")
		return
	}
	fmt.Fprintf(w, "Days %d · perfect %d · success %d%% · streak %d (best %d) · level %d\n",
		r.TotalDays, r.PerfectDays, r.SuccessRate, r.CurrentStreak, r.BestStreak, r.Level)

	fmt.Fprintln(w, "\nHabits")
	fmt.Fprintln(w, strings.Repeat("─", 48))
	for _, h := range r.Habits {
		fmt.Fprintf(w, "  %-22s %3d%%  %d/%d\n", h.Name, h.Rate, h.Completed, h.Total)
	}

	fmt.Fprintln(w, "\nWeeks")
	fmt.Fprintln(w, strings.Repeat("─", 48))
	for _, wk := range r.Weeks {
		fmt.Fprintf(w, "  Week %-3d %d/%d  %3d%%\n", wk.Week, wk.Completed, wk.Total, wk.Rate)
	}
	if d := r.Days; d.Best != nil && d.Worst != nil {
		fmt.Fprintf(w, "\nBest day %s (%d%%) · worst day %s (%d%%)\n", d.Best.Name, d.Best.Rate, d.Worst.Name, d.Worst.Rate)
	}
	if p := r.Prediction; p != nil {
		fmt.Fprintf(w, "Level %d in %d perfect days (day %d, %s)\n", p.NextLevel, p.DaysNeeded, p.PredictedDay, p.DateLabel())
	}
	for _, in := range r.Insights {
		fmt.Fprintf(w, "\n%s %s\n  %s\n", in.Icon, in.Title, in.Message)
	}
}
