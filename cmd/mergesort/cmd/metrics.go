package cmd

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hpcsort/mergesort/internal/metrics"
)

// buildMetricsProvider returns the metrics.Provider a run should use. With
// no exposition address it's an in-process BasicProvider, whose values
// the commands do not print; with an address it's a
// PrometheusProvider backed by its own registry, exposed over HTTP at
// addr + "/metrics".
func buildMetricsProvider(addr string, log *zap.Logger) (metrics.Provider, func()) {
	if addr == "" {
		return metrics.NewBasicProvider(), func() {}
	}

	reg := prometheus.NewRegistry()
	provider := metrics.NewPrometheusProvider(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics server exited", zap.Error(err))
		}
	}()

	return provider, func() { _ = srv.Close() }
}
