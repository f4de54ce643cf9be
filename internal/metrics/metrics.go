// Package metrics provides the Prometheus collectors exposed by the explorer.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains every collector the explorer records into.
type Metrics struct {
	TableLoads        *prometheus.CounterVec
	TableRows         *prometheus.GaugeVec
	TableLoadDuration *prometheus.HistogramVec
	Lookups           *prometheus.CounterVec
	ChartsMissing     *prometheus.CounterVec
	CacheRequests     *prometheus.CounterVec
	HTTPRequests      *prometheus.CounterVec
	registry          *prometheus.Registry
}

// NewMetrics creates the collectors and registers them with registry.
func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}
	m.initMetrics()

	collectors := []prometheus.Collector{
		m.TableLoads,
		m.TableRows,
		m.TableLoadDuration,
		m.Lookups,
		m.ChartsMissing,
		m.CacheRequests,
		m.HTTPRequests,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register explorer metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) initMetrics() {
	m.TableLoads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "explorer_table_loads_total",
		Help: "Number of times the result tables of a mode were read from disk",
	}, []string{"mode"})

	m.TableRows = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "explorer_table_rows",
		Help: "Rows in the most recently loaded table of a mode",
	}, []string{"mode"})

	m.TableLoadDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "explorer_table_load_duration_seconds",
		Help:    "Time spent reading and validating the result tables",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
	}, []string{"mode"})

	m.Lookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "explorer_lookups_total",
		Help: "Result lookups by mode and outcome",
	}, []string{"mode", "outcome"})

	m.ChartsMissing = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "explorer_charts_missing_total",
		Help: "Chart requests that found no readable image",
	}, []string{"mode"})

	m.CacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "explorer_table_cache_requests_total",
		Help: "Table cache lookups by result",
	}, []string{"result"})

	m.HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "explorer_http_requests_total",
		Help: "HTTP requests by method and status code",
	}, []string{"method", "code"})
}

func (m *Metrics) ObserveTableLoad(mode string, rows int, duration time.Duration) {
	m.TableLoads.WithLabelValues(mode).Inc()
	m.TableRows.WithLabelValues(mode).Set(float64(rows))
	m.TableLoadDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

func (m *Metrics) IncLookup(mode, outcome string) {
	m.Lookups.WithLabelValues(mode, outcome).Inc()
}

func (m *Metrics) IncChartMissing(mode string) {
	m.ChartsMissing.WithLabelValues(mode).Inc()
}

func (m *Metrics) IncCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequests.WithLabelValues(result).Inc()
}

func (m *Metrics) IncHTTPRequest(method string, status int) {
	m.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
