package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Print a backup code of all progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		code, err := svc.BackupCode()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), code)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore [code]",
	Short: "Restore progress from a backup code, a checkpoint or the cloud",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		checkpoint, _ := cmd.Flags().GetInt("checkpoint")
		fromCloud, _ := cmd.Flags().GetBool("cloud")

		sources := 0
		for _, set := range []bool{len(args) == 1, checkpoint > 0, fromCloud} {
			if set {
				sources++
			}
		}
		if sources != 1 {
			return errors.New("give exactly one of: a backup code, --checkpoint N or --cloud")
		}

		svc, st, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		switch {
		case fromCloud:
			err = svc.RestoreFromCloud(ctx)
		case checkpoint > 0:
			err = svc.RestoreCheckpoint(ctx, checkpoint)
		default:
			err = svc.RestoreFromCode(ctx, strings.TrimSpace(args[0]))
		}
		if err != nil {
			return err
		}
		s := svc.State()
		fmt.Fprintf(cmd.OutOrStdout(), "Restored: day %d, level %d, streak %d.\n", s.CurrentDay, s.Level, s.Streak)
		return nil
	},
}

var checkpointsCmd = &cobra.Command{
	Use:   "checkpoints",
	Short: "List the daily checkpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		svc, st, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		snaps, err := svc.Checkpoints(cmd.Context(), limit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(snaps) == 0 {
			fmt.Fprintln(out, "No checkpoints yet.")
			return nil
		}
		fmt.Fprintf(out, "%-5s  %s\n", "Day", "Taken")
		fmt.Fprintln(out, strings.Repeat("─", 28))
		for _, s := range snaps {
			fmt.Fprintf(out, "%-5d  %s\n", s.Sequence, s.Timestamp.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	restoreCmd.Flags().Int("checkpoint", 0, "Restore the checkpoint taken after this day")
	restoreCmd.Flags().Bool("cloud", false, "Restore the cloud backup of the sync identity")
	checkpointsCmd.Flags().Int("limit", 0, "Show at most this many (0 = all)")
}
