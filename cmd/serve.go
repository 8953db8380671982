package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/transform90/internal/api"
	"github.com/abhisek/transform90/internal/cloud"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tracker and the backup store over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		listen, _ := cmd.Flags().GetString("listen")
		if listen == "" {
			listen = cfg.Server.Listen
		}

		svc, st, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		// Backups pushed by other instances live in this instance's store.
		app := api.New(svc, cloud.NewLocalRemote(st.KVRepo()), logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Info("listening", zap.String("addr", listen))
			return app.Listen(listen)
		})
		g.Go(func() error {
			svc.RunAutoSync(ctx)
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			logger.Info("shutting down")
			return app.ShutdownWithContext(context.Background())
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "Listen address (overrides server.listen)")
}
