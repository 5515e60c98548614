package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/kanjigo"
	kanjiprom "github.com/hupe1980/kanjigo/metric/prometheus"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the cache whenever the dictionary files change",
	Long: `Watch keeps a catalog open, rebuilds it when a dictionary file changes
and writes every rebuild to the cache. With --metrics-addr it serves
Prometheus metrics on /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if _, ok := cfg.Source(); !ok {
			return kanjigo.ErrNoSource
		}

		var extra []kanjigo.Option
		var srv *http.Server
		if cfg.MetricsAddr != "" {
			reg := prometheus.NewRegistry()
			extra = append(extra, kanjigo.WithMetricsCollector(kanjiprom.NewCollector(reg, "kanjigo")))
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			srv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		}

		cat, err := openCatalog(ctx, cmd, cfg, extra...)
		if err != nil {
			return err
		}
		defer cat.Close()

		if err := cat.Watch(ctx); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		if srv != nil {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()
		}

		select {
		case <-ctx.Done():
		case err = <-errCh:
		}
		if srv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}
		return err
	},
}

func init() {
	watchCmd.Flags().String("metrics-addr", "", "address to serve Prometheus metrics on (e.g. :9090)")
	_ = viper.BindPFlag("metrics_addr", watchCmd.Flags().Lookup("metrics-addr"))
	rootCmd.AddCommand(watchCmd)
}
