package mmap

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	handlesOpened = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mmap",
		Name:      "handles_opened_total",
		Help:      "Total number of native handles taken into ownership.",
	}, []string{"kind"})

	handlesClosed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mmap",
		Name:      "handles_closed_total",
		Help:      "Total number of native handles closed by their owning Handle.",
	}, []string{"kind"})

	handleCloseErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mmap",
		Name:      "handle_close_errors_total",
		Help:      "Total number of native close calls that reported an error.",
	}, []string{"kind"})

	handlesFinalized = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mmap",
		Name:      "handles_finalized_total",
		Help:      "Total number of leaked handles closed by the garbage collector.",
	}, []string{"kind"})

	createErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mmap",
		Name:      "create_errors_total",
		Help:      "Total number of failed native create calls.",
	}, []string{"kind"})
)

// Collectors returns the package's metric collectors.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		handlesOpened,
		handlesClosed,
		handleCloseErrors,
		handlesFinalized,
		createErrors,
	}
}

// RegisterMetrics registers the package's collectors with reg. Collectors that are
// already registered are skipped.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
