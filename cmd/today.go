package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/transform90/internal/program"
	"github.com/abhisek/transform90/internal/progress"
	"github.com/abhisek/transform90/internal/tracker"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's tasks and notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		v, err := svc.Today()
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd.OutOrStdout(), v)
		}
		printToday(cmd.OutOrStdout(), v)
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <task>...",
	Short: "Check off today's tasks (workout, gameDev, reading, ...)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		undo, _ := cmd.Flags().GetBool("undo")

		keys := make([]program.TaskKey, 0, len(args))
		for _, a := range args {
			k, err := program.ParseTaskKey(a)
			if err != nil {
				return err
			}
			keys = append(keys, k)
		}

		svc, st, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		for _, k := range keys {
			if err := svc.SetTask(cmd.Context(), k, !undo); err != nil {
				return err
			}
		}
		v, err := svc.Today()
		if err != nil {
			return err
		}
		printToday(cmd.OutOrStdout(), v)
		return nil
	},
}

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Set today's notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		var u tracker.NotesUpdate
		flag := func(name string) *string {
			if !cmd.Flags().Changed(name) {
				return nil
			}
			v, _ := cmd.Flags().GetString(name)
			return &v
		}
		u.GameDev = flag("gamedev")
		u.Van = flag("van")
		u.Win = flag("win")
		u.Improve = flag("improve")
		if u == (tracker.NotesUpdate{}) {
			return errors.New("nothing to set: use --gamedev, --van, --win or --improve")
		}

		svc, st, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		svc.SetNotes(cmd.Context(), u)
		v, err := svc.Today()
		if err != nil {
			return err
		}
		printToday(cmd.OutOrStdout(), v)
		return nil
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Submit today",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := svc.CompleteDay(cmd.Context())
		var incomplete *progress.IncompleteDayError
		if errors.As(err, &incomplete) {
			for _, k := range incomplete.MissingTasks {
				fmt.Fprintf(cmd.ErrOrStderr(), "  unchecked: %s\n", k.DisplayName())
			}
			for _, f := range incomplete.MissingFields {
				fmt.Fprintf(cmd.ErrOrStderr(), "  missing note: %s\n", f)
			}
			return errors.New("today is not finished yet")
		}
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	todayCmd.Flags().Bool("json", false, "Print as JSON")
	checkCmd.Flags().Bool("undo", false, "Uncheck the tasks instead")
	noteCmd.Flags().String("gamedev", "", "What you built today")
	noteCmd.Flags().String("van", "", "Time with the van")
	noteCmd.Flags().String("win", "", "Today's win")
	noteCmd.Flags().String("improve", "", "What to improve tomorrow")
}
