package main

import (
	"context"
	"errors"
	"net/http"

	httpadapter "github.com/goganux/texas-career-path-explorer/pkg/adapters/http"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the catalog API and the explorer session API over HTTP.
Prometheus metrics are exposed on /metrics and the OpenAPI document on /openapi.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			app.Config.Server.Addr = addr
		}
		cfg := app.Config.Server

		handler := httpadapter.NewHandler(httpadapter.Dependencies{
			Catalog:  app.Catalog,
			Pathways: app.Pathways,
			Market:   app.Market,
			Sessions: app.Sessions,
		},
			httpadapter.WithLogger(app.Logger),
			httpadapter.WithMetrics(app.Metrics),
			httpadapter.WithCORSOrigin(cfg.CORSOrigin),
		)

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: handler,
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			app.Logger.Info("Starting pathways HTTP server",
				"addr", cfg.Addr,
				"pathways", app.Config.Pathways.Source,
				"sessions", app.Config.Sessions.Store,
			)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			app.Logger.Info("Shutting down HTTP server", "timeout", cfg.ShutdownTimeout)

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				app.Logger.Warn("Graceful shutdown did not complete", "err", err)
				return srv.Close()
			}
			return nil
		})

		if err := g.Wait(); err != nil {
			return err
		}
		app.Logger.Info("HTTP server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (overrides server.addr)")
}
