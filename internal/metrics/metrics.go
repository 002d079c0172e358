// Package metrics exposes Prometheus instruments for the HTTP layer, the
// query executor and the connection pool.
package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "rolodex"

// Collector groups the application's metrics. A nil *Collector is valid and
// records nothing, so components can be built without metrics in tests.
type Collector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec

	dbPoolInits       *prometheus.CounterVec
	dbConnectionsOpen prometheus.Gauge
	dbConnectionsIdle prometheus.Gauge
	dbConnectionsUse  prometheus.Gauge
	dbWaitCount       prometheus.Gauge
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		dbQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "db_queries_total",
				Help:      "Total number of statements executed, by outcome",
			},
			[]string{"operation", "outcome"},
		),
		dbQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "db_query_duration_seconds",
				Help:      "Statement execution time in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15},
			},
			[]string{"operation"},
		),
		dbPoolInits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "db_pool_init_total",
				Help:      "Connection pool initialization attempts, by outcome",
			},
			[]string{"outcome"},
		),
		dbConnectionsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "db_connections_open",
			Help:      "Open connections in the pool",
		}),
		dbConnectionsIdle: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "db_connections_idle",
			Help:      "Idle connections in the pool",
		}),
		dbConnectionsUse: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "db_connections_in_use",
			Help:      "Connections currently in use",
		}),
		dbWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "db_connections_wait_count",
			Help:      "Total number of connections waited for",
		}),
	}
}

// RecordHTTPRequest records one handled request. route is the matched route
// pattern, not the raw path, to keep label cardinality bounded.
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordQuery records one statement execution.
func (c *Collector) RecordQuery(operation, outcome string, duration time.Duration) {
	if c == nil {
		return
	}
	c.dbQueriesTotal.WithLabelValues(operation, outcome).Inc()
	c.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordPoolInit records one pool initialization attempt.
func (c *Collector) RecordPoolInit(outcome string) {
	if c == nil {
		return
	}
	c.dbPoolInits.WithLabelValues(outcome).Inc()
}

// RecordPoolStats publishes a snapshot of the pool's statistics.
func (c *Collector) RecordPoolStats(stats sql.DBStats) {
	if c == nil {
		return
	}
	c.dbConnectionsOpen.Set(float64(stats.OpenConnections))
	c.dbConnectionsIdle.Set(float64(stats.Idle))
	c.dbConnectionsUse.Set(float64(stats.InUse))
	c.dbWaitCount.Set(float64(stats.WaitCount))
}
