package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sternrassler/pokedex-catalog/internal/web"
	"github.com/Sternrassler/pokedex-catalog/pkg/listing"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the prerendered catalog over HTTP",
		Long: `Serve the catalog over HTTP.

Routes:
  GET /                  listing page (query: type=a,b  page=n)
  GET /api/listing       listing as JSON
  GET /api/items/{name}  one resolved item as JSON
  GET /healthz           liveness
  GET /metrics           Prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	upstream, err := a.upstream()
	if err != nil {
		return err
	}
	defer upstream.Close()

	srv := web.New(web.Config{Addr: a.cfg.Server.Addr}, listing.NewPrerenderer(upstream, a.cfg.BatchFetcher()))

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("upstream", upstream.BaseURL()).
			Msg("Starting catalog server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down catalog server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
