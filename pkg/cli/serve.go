package cli

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/platinummonkey/protodoc/pkg/config"
	"github.com/platinummonkey/protodoc/pkg/docs"
	"github.com/platinummonkey/protodoc/pkg/httputil"
	"github.com/platinummonkey/protodoc/pkg/observability"
	"github.com/platinummonkey/protodoc/pkg/schema"
)

func newServeCommand() *Command {
	cmd := &Command{
		Name:        "serve",
		Description: "Serve the rendered API reference over HTTP, optionally watching for schema changes",
		Flags:       flag.NewFlagSet("serve", flag.ExitOnError),
	}

	dir := cmd.Flags.String("dir", "", "Directory containing schema files")
	watch := cmd.Flags.Bool("watch", false, "Re-render when schema files change")

	cmd.Run = func(args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		if *dir == "" && cmd.Flags.NArg() > 0 {
			*dir = cmd.Flags.Arg(0)
		}
		if *dir == "" {
			return fmt.Errorf("schema directory is required (use -dir)")
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		return runServe(cfg, *dir, *watch)
	}

	return cmd
}

func runServe(cfg *config.Config, dir string, watch bool) error {
	log := cfg.NewLogger()

	var metrics *observability.Metrics
	var observer schema.IngestObserver
	promRegistry := prometheus.NewRegistry()
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(promRegistry)
		observer = metrics
	}

	reg, err := buildRegistry(log, dir, observer)
	if err != nil {
		return err
	}

	preview, err := docs.NewPreviewServer(reg, docs.PreviewConfig{
		Title:     cfg.Docs.Title,
		BaseURL:   cfg.Docs.BaseURL,
		Templates: templateSource(cfg),
		Metrics:   metrics,
		CacheSize: cfg.Docs.CacheSize,
		Log:       log,
	})
	if err != nil {
		return err
	}

	router := mux.NewRouter()
	router.Use(httputil.RequestIDMiddleware)
	router.Use(httputil.LoggingMiddleware(log))
	router.Use(httputil.RecoveryMiddleware(log))
	if metrics != nil {
		router.Use(observability.HTTPMetricsMiddleware(metrics))
		router.Handle("/metrics", observability.Handler(promRegistry)).Methods("GET")
	}
	preview.RegisterRoutes(router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if watch {
		watcher, err := newSchemaWatcher(dir, cfg.Watch.Debounce, log, func() {
			reloaded, err := buildRegistry(log, dir, observer)
			if err != nil {
				log.Errorf("Failed to rebuild registry: %v", err)
				return
			}
			preview.Reload(reloaded)
		})
		if err != nil {
			return err
		}
		defer watcher.Close()
		go watcher.Run(ctx)
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("Documentation server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down documentation server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
