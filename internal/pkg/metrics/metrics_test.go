package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	// 各テストで新しいレジストリを使用
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	require.NotNil(t, m)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.RSVPsTotal)
	assert.NotNil(t, m.EmailsSentTotal)
	assert.NotNil(t, m.ClassLockDuration)
	assert.NotNil(t, m.ActiveClasses)
	assert.NotNil(t, m.ClassSpotsRemaining)
}

func TestHTTPRequestsTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.HTTPRequestsTotal.WithLabelValues("GET", "/classes", "200").Inc()
	m.HTTPRequestsTotal.WithLabelValues("POST", "/rsvp", "200").Inc()
	m.HTTPRequestsTotal.WithLabelValues("POST", "/rsvp", "400").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "http_requests_total" {
			found = true
			assert.Equal(t, 3, len(f.GetMetric()))
		}
	}
	assert.True(t, found, "http_requests_total metric not found")
}

func TestObserveRSVP(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.ObserveRSVP("success")
	m.ObserveRSVP("success")
	m.ObserveRSVP("full")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RSVPsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RSVPsTotal.WithLabelValues("full")))
}

func TestObserveEmail(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.ObserveEmail("confirmation", nil)
	m.ObserveEmail("admin_notice", errors.New("provider down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailsSentTotal.WithLabelValues("confirmation", "sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailsSentTotal.WithLabelValues("admin_notice", "failed")))
}

func TestObserveLock(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.ObserveLock(0.015, nil)
	m.ObserveLock(0.2, errors.New("busy"))

	assert.Equal(t, 2, testutil.CollectAndCount(m.ClassLockDuration))
}

func TestObserve_NilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRSVP("success")
		m.ObserveEmail("inquiry", nil)
		m.ObserveLock(0.1, nil)
	})
}

func TestClassGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.ActiveClasses.Set(3)
	m.ClassSpotsRemaining.WithLabelValues("class-1").Set(5)
	m.ClassSpotsRemaining.WithLabelValues("class-2").Set(0)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.ActiveClasses))
	assert.Equal(t, 2, testutil.CollectAndCount(m.ClassSpotsRemaining))
}
