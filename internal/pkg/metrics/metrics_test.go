package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
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
	assert.NotNil(t, m.HoldsTotal)
	assert.NotNil(t, m.AutoSelectDuration)
	assert.NotNil(t, m.AbandonedOrdersTotal)
	assert.NotNil(t, m.HeldSeats)
}

func TestHTTPRequestsTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/events", "200").Inc()
	m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/orders", "201").Inc()
	m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/orders", "409").Inc()

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

func TestHoldsTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.HoldsTotal.WithLabelValues("success").Inc()
	m.HoldsTotal.WithLabelValues("success").Inc()
	m.HoldsTotal.WithLabelValues("unavailable").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "seat_holds_total" {
			found = true
			assert.Equal(t, 2, len(f.GetMetric()))
		}
	}
	assert.True(t, found, "seat_holds_total metric not found")
}

func TestAutoSelectDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.AutoSelectDuration.WithLabelValues("adjacent").Observe(0.02)
	m.AutoSelectDuration.WithLabelValues("failed").Observe(0.5)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "auto_select_duration_seconds" {
			found = true
		}
	}
	assert.True(t, found, "auto_select_duration_seconds metric not found")
}

func TestInitAndGet(t *testing.T) {
	// Init はデフォルトレジストリに登録するため、二重登録を避けて
	// 既存インスタンスの取得だけを検証する
	if defaultMetrics == nil {
		Init()
	}
	assert.NotNil(t, Get())
}
