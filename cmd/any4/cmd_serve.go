package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpadapter "svw.info/any4/internal/adapters/http"
	"svw.info/any4/internal/infrastructure/storage"
)

var (
	serveAddr  string
	serveWatch bool

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve boards over HTTP",
		RunE:  runServe,
	}
)

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveAddr, "addr", ":8080", "listen address")
	f.BoolVar(&serveWatch, "watch", true, "reload pools when the pool file changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	overrideString(cmd.Flags(), "addr", &cfg.Server.Addr, serveAddr)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg.Session.Seed)
	if err != nil {
		return err
	}
	defer a.close()
	if _, err := a.init(ctx, false); err != nil {
		return err
	}
	if _, err := a.uc.Pools(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpadapter.New(a.uc).Routes(logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.Server.Addr, "data", cfg.DataDir, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	})
	if serveWatch && cfg.Storage != "sqlite" {
		g.Go(func() error {
			return storage.Watch(ctx, cfg.PoolPath(), logger, func() {
				if _, err := a.uc.Reload(ctx); err != nil {
					logger.Warn("pool reload failed", "err", err)
					return
				}
				logger.Info("pools reloaded")
			})
		})
	}
	return g.Wait()
}
