package adapter

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/srediag/plugin-mmap/pkg/mmap"
)

// NewMetricsHandler registers the handle metrics on a fresh registry and serves them.
func NewMetricsHandler() (http.Handler, error) {
	reg := prometheus.NewRegistry()
	if err := mmap.RegisterMetrics(reg); err != nil {
		return nil, err
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}
