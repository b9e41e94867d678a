package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("appointments", reg)

	m.IncBookingCreated()
	m.IncBookingCreated()
	m.IncBookingConflict("precheck")
	m.IncNotification("sms", "confirmation", errors.New("gateway down"))
	m.ObserveHTTPRequest("GET", "/api/avail", 200, 10*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.bookingsCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.bookingConflicts.WithLabelValues("precheck")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.notifications.WithLabelValues("sms", "confirmation", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/avail", "200")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingCreated()
		m.IncBookingConflict("constraint")
		m.ObserveSlotsServed(3)
		m.IncReminderScheduled("scheduled")
		m.IncRateLimited("/api/book")
	})
}
