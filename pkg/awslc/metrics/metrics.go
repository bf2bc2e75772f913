// Package metrics exposes awslc operation counters on a private Prometheus
// registry.
package metrics

import (
	"net/http"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is safe for concurrent use. A nil *Metrics records nothing.
type Metrics struct {
	reg         *prometheus.Registry
	handler     http.Handler
	opsTotal    *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	liveHandles prometheus.Gauge
	buildInfo   *prometheus.GaugeVec
	fipsMode    prometheus.Gauge
}

// New returns a fresh registry with the Go collectors and awslc metrics.
// Labels are operation and error-kind names only.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		opsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "awslc_operations_total",
			Help: "Total library operations by name",
		}, []string{"op"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "awslc_errors_total",
			Help: "Total engine failures by error kind",
		}, []string{"kind"}),
		liveHandles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "awslc_live_handles",
			Help: "Engine allocations currently owned by Go wrappers",
		}),
		buildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "awslc_build_info",
			Help: "Build metadata (value is always 1)",
		}, []string{"version", "engine", "go_version"}),
		fipsMode: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "awslc_fips_mode",
			Help: "Whether the engine runs in FIPS mode (1) or not (0)",
		}),
	}
	reg.MustRegister(m.opsTotal, m.errorsTotal, m.liveHandles, m.buildInfo, m.fipsMode)

	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	m.reg = reg
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return m.handler
}

// Registry returns the private registry, for callers that aggregate it.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

func (m *Metrics) IncOp(op string) {
	if m == nil {
		return
	}
	m.opsTotal.WithLabelValues(op).Inc()
}

func (m *Metrics) IncError(kind string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) SetLiveHandles(n int) {
	if m == nil {
		return
	}
	m.liveHandles.Set(float64(n))
}

// set once at startup.
func (m *Metrics) SetBuildInfo(version, engine string, fips bool) {
	if m == nil {
		return
	}
	m.buildInfo.Reset()
	m.buildInfo.WithLabelValues(version, engine, runtime.Version()).Set(1)
	if fips {
		m.fipsMode.Set(1)
	} else {
		m.fipsMode.Set(0)
	}
}
