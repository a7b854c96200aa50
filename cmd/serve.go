package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/disgoorg/card-binder/internal/api"
	"github.com/disgoorg/card-binder/internal/clock"
	"github.com/disgoorg/card-binder/internal/domain/chat"
	"github.com/disgoorg/card-binder/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, closeRepo, err := loadStore(ctx)
		if err != nil {
			logger.LogError("Failed to open storage", err)
			return err
		}
		defer closeRepo()

		lk, err := newLookupClient()
		if err != nil {
			return err
		}
		feed, notifier, err := newNotifier()
		if err != nil {
			return err
		}

		srv, err := api.New(cfg.Server, api.Deps{
			Store:    store,
			Lookup:   lk,
			Inbox:    chat.NewInbox(clock.Real{}),
			Feed:     feed,
			Notifier: notifier,
			Clock:    clock.Real{},
			Version:  rootCmd.Version,
		})
		if err != nil {
			return err
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.Listen(cfg.Server.Addr)
		})
		g.Go(func() error {
			<-gctx.Done()
			logger.LogSystem("Shutting down API server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		if err := g.Wait(); err != nil {
			logger.LogError("API server stopped", err)
			return err
		}
		logger.LogSystem("API server shutdown complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
