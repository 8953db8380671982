package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/transform90/internal/app"
)

// runBoard launches the TUI with periodic auto-sync in the background.
func runBoard(cmd *cobra.Command) error {
	svc, st, err := openService(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.RunAutoSync(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	return app.Run(svc)
}
