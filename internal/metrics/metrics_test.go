// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveRequest(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveRequest(http.MethodGet, "/api/users/{id}", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/users/{id}", http.StatusOK, 30*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/users/{id}", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/users/{id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/users/{id}", "404")))
}

func TestMetrics_ObserveLogin(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveLogin(true)
	m.ObserveLogin(false)
	m.ObserveLogin(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginsTotal.WithLabelValues(LoginSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoginsTotal.WithLabelValues(LoginFailure)))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics(nil)
	m.RateLimitedTotal.Inc()
	m.RealtimeConnections.Set(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "imperial_rate_limited_requests_total 1")
	assert.Contains(t, string(body), "imperial_realtime_connections 2")
	assert.Contains(t, string(body), "go_goroutines")
}
