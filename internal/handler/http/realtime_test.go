// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/imperial-command/internal/config"
	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/metrics"
	"github.com/MKhiriev/imperial-command/internal/realtime"
	"github.com/MKhiriev/imperial-command/internal/service"
	"github.com/MKhiriev/imperial-command/models"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startRealtimeServer serves the full router with a running hub.
func startRealtimeServer(t *testing.T) (*httptest.Server, *realtime.Hub, *metrics.Metrics) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	m := metrics.NewMetrics(nil)
	hub := realtime.NewHub(nil, m.RealtimeConnections, logger.Nop())
	go hub.Run(ctx)

	h := NewHandler(&service.Services{AuthService: tokenAuth()}, hub, m, config.Server{}, logger.Nop())
	srv := httptest.NewServer(h.Init())

	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return srv, hub, m
}

func wsURL(srv *httptest.Server, query string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/realtime" + query
}

func readEvent(t *testing.T, conn *websocket.Conn) models.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var event models.Event
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func TestRealtime_WelcomeAndDirectedEvents(t *testing.T) {
	srv, hub, m := startRealtimeServer(t)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "?token="+userToken), nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	assert.Equal(t, models.EventWelcome, readEvent(t, conn).Type)
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(m.RealtimeConnections) == 1
	}, time.Second, 10*time.Millisecond)

	// an event for another user must not arrive before the broadcast
	hub.SendToUser(testAdmin.ID, models.Event{Type: models.EventModule, Data: "not yours"})
	hub.SendToUser(testUser.ID, models.Event{Type: models.EventModule, Data: "yours"})
	hub.Broadcast(models.Event{Type: models.EventMaintenance, Data: true})

	direct := readEvent(t, conn)
	assert.Equal(t, models.EventModule, direct.Type)
	assert.Equal(t, "yours", direct.Data)
	assert.Equal(t, models.EventMaintenance, readEvent(t, conn).Type)
}

func TestRealtime_BearerHeader(t *testing.T) {
	srv, _, _ := startRealtimeServer(t)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+admiralToken)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), header)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, models.EventWelcome, readEvent(t, conn).Type)
}

func TestRealtime_RejectedHandshake(t *testing.T) {
	srv, _, _ := startRealtimeServer(t)

	tests := []struct {
		name  string
		query string
	}{
		{"no token", ""},
		{"bad token", "?token=forged"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, tt.query), nil)
			require.ErrorIs(t, err, websocket.ErrBadHandshake)
			require.NotNil(t, resp)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestRealtime_ForeignOriginRejected(t *testing.T) {
	srv, _, _ := startRealtimeServer(t)

	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "?token="+userToken), header)

	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
