package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/nirmanlabs/nirman/internal/config"
	"github.com/nirmanlabs/nirman/pkg/api"
	"github.com/nirmanlabs/nirman/pkg/pipeline"
)

// shutdownGrace bounds how long in-flight requests may run after the
// server receives a stop signal.
const shutdownGrace = 10 * time.Second

// newServeCmd creates the serve command: run the HTTP API server.
func newServeCmd(configPath *string) *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the planning API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if listenAddr != "" {
				cfg.Server.ListenAddr = listenAddr
			}

			store, err := cfg.OpenCache(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			assistClient, err := cfg.AssistClient(logger)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(store, nil, logger)
			server := api.NewServer(runner, assistClient, cfg.Layout.Strategy, cfg.Layout.AspectRatio, logger)

			httpServer := &http.Server{
				Addr:    cfg.Server.ListenAddr,
				Handler: server.Handler(),
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("serving", "addr", cfg.Server.ListenAddr, "assist", assistClient != nil)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					return err
				}
				if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (overrides config)")
	return cmd
}
