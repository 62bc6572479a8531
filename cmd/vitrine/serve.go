package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/vitrine"
	"github.com/aretw0/vitrine/internal/cli"
	apihttp "github.com/aretw0/vitrine/pkg/adapters/http"
	"github.com/aretw0/vitrine/pkg/adapters/redis"
	"github.com/aretw0/vitrine/pkg/observability"
	"github.com/aretw0/vitrine/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the site server",
	Long: `Serves the site pages, the carousel and chat session API, and /metrics.
With --metrics-addr, metrics move to a separate listener.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("addr") {
			cfg.Addr, _ = flags.GetString("addr")
		}
		if flags.Changed("metrics-addr") {
			cfg.MetricsAddr, _ = flags.GetString("metrics-addr")
		}
		public, _ := flags.GetString("public")
		return runServe(cli.NewSignalContext(context.Background()), public)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("metrics-addr", "", "Separate address for /metrics (default: served on --addr)")
	serveCmd.Flags().String("public", "", "Directory of public assets (images, videos) served at the site root")
}

func runServe(ctx *cli.SignalContext, public string) error {
	defer ctx.Cancel()

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)
	metricsHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})

	appOpts := []vitrine.Option{vitrine.WithMetrics(metrics)}
	if cfg.RedisURL != "" {
		client, err := redis.Connect(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		// Reads fall through to the source while Redis is down.
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("catalog cache unreachable", "err", err)
		}
		appOpts = append(appOpts, vitrine.WithCatalogMiddleware(
			redis.Middleware(client, redis.WithTTL(cfg.CatalogCacheTTL), redis.WithLogger(logger)),
		))
	}
	app, err := newApp(logger, appOpts...)
	if err != nil {
		return err
	}
	if issues := app.Lint(); len(issues) > 0 {
		for _, issue := range issues {
			logger.Warn("chatbot script issue", "issue", issue.String())
		}
	}

	opts := []apihttp.Option{
		apihttp.WithAnalyticsID(cfg.AnalyticsID),
		apihttp.WithBaseURL(cfg.BaseURL),
		apihttp.WithPublicDir(public),
		apihttp.WithSessionOptions(
			session.WithIdleTimeout(cfg.SessionIdle),
			session.WithMaxSessions(cfg.MaxSessions),
		),
	}
	if cfg.FormURL != "" {
		opts = append(opts, apihttp.WithFormURL(cfg.FormURL))
	}
	if cfg.MetricsAddr == "" {
		opts = append(opts, apihttp.WithMetricsHandler(metricsHandler))
	}
	site, err := app.HTTPServer(opts...)
	if err != nil {
		return err
	}
	defer site.Close()

	servers := []*http.Server{{Addr: cfg.Addr, Handler: site.Handler()}}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsHandler)
		servers = append(servers, &http.Server{Addr: cfg.MetricsAddr, Handler: mux})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			logger.Info("listening", "addr", srv.Addr, "version", vitrine.Version)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		if sig := ctx.Signal(); sig != nil {
			logger.Info("shutting down", "signal", sig.String())
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		// Event streams only end when their sessions close.
		site.Close()
		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("graceful shutdown of %s did not complete in %v: %w", srv.Addr, cfg.ShutdownTimeout, err))
				srv.Close()
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped gracefully")
	return nil
}
