package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics prometheus collectors shared by the HTTP layer, the database wrapper and the task runner.
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration   *prometheus.HistogramVec
	dbOpenConnections *prometheus.GaugeVec
	dbInUse           *prometheus.GaugeVec
	dbIdle            *prometheus.GaugeVec
	dbWaitCount       *prometheus.GaugeVec

	tasksTotal    *prometheus.CounterVec
	tasksInFlight *prometheus.GaugeVec
}

// New creates collectors registered in the default prometheus registry.
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer creates collectors registered in reg.
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database operation latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation", "status"}),
		dbOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		dbInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		dbIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		tasksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "background_tasks_total",
			Help: "Finished background tasks by outcome",
		}, []string{"service", "task", "status"}),
		tasksInFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "background_tasks_in_flight",
			Help: "Background tasks currently running",
		}, []string{"service"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConnections,
		m.dbInUse,
		m.dbIdle,
		m.dbWaitCount,
		m.tasksTotal,
		m.tasksInFlight,
	)

	return m
}

func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBOperation(operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil && err != sql.ErrNoRows {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation, status).Observe(duration.Seconds())
}

// SetDBStats publishes a connection pool snapshot.
func (m *Metrics) SetDBStats(stats sql.DBStats) {
	m.dbOpenConnections.WithLabelValues(m.serviceName).Set(float64(stats.OpenConnections))
	m.dbInUse.WithLabelValues(m.serviceName).Set(float64(stats.InUse))
	m.dbIdle.WithLabelValues(m.serviceName).Set(float64(stats.Idle))
	m.dbWaitCount.WithLabelValues(m.serviceName).Set(float64(stats.WaitCount))
}

func (m *Metrics) TaskStarted() {
	m.tasksInFlight.WithLabelValues(m.serviceName).Inc()
}

func (m *Metrics) TaskFinished(task string, status string) {
	m.tasksInFlight.WithLabelValues(m.serviceName).Dec()
	m.tasksTotal.WithLabelValues(m.serviceName, task, status).Inc()
}
