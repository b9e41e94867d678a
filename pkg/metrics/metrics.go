package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках можно передавать nil.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration   *prometheus.HistogramVec
	dbOpenConnections prometheus.Gauge
	dbInUse           prometheus.Gauge
	dbIdle            prometheus.Gauge
	dbWaitCount       prometheus.Gauge

	bookingsCreated    prometheus.Counter
	bookingConflicts   *prometheus.CounterVec
	slotsServed        prometheus.Histogram
	notifications      *prometheus.CounterVec
	remindersScheduled *prometheus.CounterVec
	rateLimited        *prometheus.CounterVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database call latency by operation.",
			ConstLabels: labels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		dbOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool.",
			ConstLabels: labels,
		}),
		dbInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use.",
			ConstLabels: labels,
		}),
		dbIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool.",
			ConstLabels: labels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for.",
			ConstLabels: labels,
		}),
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings successfully created.",
			ConstLabels: labels,
		}),
		bookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Booking attempts rejected because the slot was taken.",
			ConstLabels: labels,
		}, []string{"stage"}),
		slotsServed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "available_slots_served",
			Help:        "Number of available slots returned per availability request.",
			ConstLabels: labels,
			Buckets:     prometheus.LinearBuckets(0, 2, 10),
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Notifications sent by channel, kind and result.",
			ConstLabels: labels,
		}, []string{"channel", "kind", "result"}),
		remindersScheduled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reminders_scheduled_total",
			Help:        "Reminder scheduling attempts by result.",
			ConstLabels: labels,
		}, []string{"result"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "rate_limited_requests_total",
			Help:        "Requests rejected by the rate limiter.",
			ConstLabels: labels,
		}, []string{"path"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConnections,
		m.dbInUse,
		m.dbIdle,
		m.dbWaitCount,
		m.bookingsCreated,
		m.bookingConflicts,
		m.slotsServed,
		m.notifications,
		m.remindersScheduled,
		m.rateLimited,
	)

	return m
}

func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation, resultLabel(err)).Observe(duration.Seconds())
}

func (m *Metrics) SetDBStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConnections.Set(float64(stats.OpenConnections))
	m.dbInUse.Set(float64(stats.InUse))
	m.dbIdle.Set(float64(stats.Idle))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}

func (m *Metrics) IncBookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.Inc()
}

// IncBookingConflict stage: check, unique_index или serialization
func (m *Metrics) IncBookingConflict(stage string) {
	if m == nil {
		return
	}
	m.bookingConflicts.WithLabelValues(stage).Inc()
}

func (m *Metrics) ObserveSlotsServed(count int) {
	if m == nil {
		return
	}
	m.slotsServed.Observe(float64(count))
}

func (m *Metrics) IncNotification(channel, kind string, err error) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(channel, kind, resultLabel(err)).Inc()
}

func (m *Metrics) IncReminderScheduled(result string) {
	if m == nil {
		return
	}
	m.remindersScheduled.WithLabelValues(result).Inc()
}

func (m *Metrics) IncRateLimited(path string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(path).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
