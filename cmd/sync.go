package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Manage cloud backup",
}

var syncEnableCmd = &cobra.Command{
	Use:   "enable <email>",
	Short: "Enable cloud backup for an email and push right away",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := svc.EnableSync(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cloud backup enabled for %s.\n", args[0])
		return nil
	},
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Back up now",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := svc.PushNow(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Backed up.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cloud backup setup",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		s, err := svc.SyncStatus(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !s.Enabled {
			fmt.Fprintln(out, "Cloud backup is off. Run `transform90 sync enable <email>`.")
			return nil
		}
		last := "never"
		if !s.LastSync.IsZero() {
			last = s.LastSync.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(out, "Identity: %s\nRemote:   %s\nLast:     %s\n", s.Identity, cfg.Sync.Remote, last)
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncEnableCmd)
	syncCmd.AddCommand(syncPushCmd)
	syncCmd.AddCommand(syncStatusCmd)
}
