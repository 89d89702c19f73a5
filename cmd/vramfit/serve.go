package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"vramfit/internal/catalog"
	"vramfit/internal/httpapi"
)

func serveCmd(o *globalOptions) *cobra.Command {
	var (
		addr        string
		watch       bool
		corsOrigins string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") || cfg.Addr == "" {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("watch") {
				cfg.WatchCatalog = watch
			}
			if origins := splitCSV(corsOrigins); len(origins) > 0 {
				cfg.CORS.Enabled = true
				cfg.CORS.Origins = origins
			}
			cfg = cfg.WithDefaults()

			log := newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			svc, store, err := openService(cfg, log)
			if err != nil {
				return err
			}
			httpapi.SetLogger(log)
			httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
			httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.Origins, cfg.CORS.Methods, cfg.CORS.Headers)

			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           httpapi.NewMux(svc),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				log.Info().Str("addr", cfg.Addr).Str("catalog", store.Path()).Msg("vramfit listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(sctx); err != nil {
					log.Warn().Err(err).Msg("graceful shutdown error")
				}
				return nil
			})
			if cfg.WatchCatalog {
				g.Go(func() error { return store.Watch(gctx, catalog.DefaultDebounce) })
			}
			return g.Wait()
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr, "addr", envOr("VRAMFIT_ADDR", ":8080"), "HTTP listen address, e.g. :8080")
	f.BoolVar(&watch, "watch", false, "Reload the catalog when the file changes")
	f.StringVar(&corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins (enables CORS)")
	return cmd
}
