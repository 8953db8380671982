package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/transform90/internal/program"
)

var bookCmd = &cobra.Command{
	Use:   "book [title]",
	Short: "Show the reading list or switch the current book",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		next, _ := cmd.Flags().GetBool("next")

		svc, st, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		out := cmd.OutOrStdout()
		switch {
		case next:
			title, err := svc.NextBook(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Now reading %q.\n", title)
		case len(args) == 1:
			title := strings.TrimSpace(args[0])
			if err := svc.SwitchBook(cmd.Context(), title); err != nil {
				return fmt.Errorf("%w (run `transform90 book` for the list)", err)
			}
			fmt.Fprintf(out, "Now reading %q.\n", title)
		default:
			s := svc.State()
			for _, b := range program.Books() {
				marker := "  "
				if b == s.CurrentBook {
					marker = "▸ "
				}
				fmt.Fprintf(out, "%s%-26s %3d%%\n", marker, b, s.BookProgress[b])
			}
		}
		return nil
	},
}

func init() {
	bookCmd.Flags().Bool("next", false, "Switch to the next book on the list")
}
