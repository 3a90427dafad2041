package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"homebudget/internal/router"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

// runServe blocks until ctx is cancelled, then drains in-flight requests.
func runServe(ctx context.Context, opts *rootOptions) error {
	a, err := newApp(opts.cfg, opts.log)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:         a.cfg.Server.Addr(),
		Handler:      router.Handler(a.cfg, a.svc, a.log, a.metrics),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
