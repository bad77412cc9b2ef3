// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package realtime pushes server events to browser and console clients over
// WebSocket.
//
// A single goroutine started by [Hub.Run] owns the set of connections. Other
// goroutines talk to it through channels only. A client whose send buffer is
// full is dropped instead of slowing down everyone else.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/models"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
	eventBuffer    = 64
)

type client struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
}

type envelope struct {
	all     bool
	userID  int64
	payload []byte
}

// Hub fans events out to the connected clients. It implements the
// notifier used by the services.
type Hub struct {
	upgrader    websocket.Upgrader
	register    chan *client
	unregister  chan *client
	events      chan envelope
	done        chan struct{}
	clients     map[*client]struct{}
	connections prometheus.Gauge
	logger      *logger.Logger
}

// NewHub builds a Hub. allowedOrigins lists the browser origins accepted in
// addition to the server's own host; "*" accepts any. connections may be nil.
func NewHub(allowedOrigins []string, connections prometheus.Gauge, logger *logger.Logger) *Hub {
	h := &Hub{
		register:    make(chan *client),
		unregister:  make(chan *client),
		events:      make(chan envelope, eventBuffer),
		done:        make(chan struct{}),
		clients:     make(map[*client]struct{}),
		connections: connections,
		logger:      logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

// Run serves the hub until ctx is done, then closes every connection.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info().Msg("realtime hub started")
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.remove(c)
			}
			h.logger.Info().Msg("realtime hub stopped")
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.gaugeAdd(1)

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.remove(c)
			}

		case env := <-h.events:
			for c := range h.clients {
				if !env.all && c.userID != env.userID {
					continue
				}
				select {
				case c.send <- env.payload:
				default:
					h.logger.Warn().Int64("user_id", c.userID).Msg("dropping slow realtime client")
					h.remove(c)
				}
			}
		}
	}
}

// Broadcast queues event for every connected client.
func (h *Hub) Broadcast(event models.Event) {
	h.publish(envelope{all: true}, event)
}

// SendToUser queues event for the connections of userID.
func (h *Hub) SendToUser(userID int64, event models.Event) {
	h.publish(envelope{userID: userID}, event)
}

// Serve upgrades the request to a WebSocket owned by userID, greets it and
// hands it to the hub. The caller must have authenticated the request.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID int64) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{userID: userID, conn: conn, send: make(chan []byte, sendBuffer)}
	if welcome, err := json.Marshal(models.Event{Type: models.EventWelcome}); err == nil {
		c.send <- welcome
	}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return nil
	}

	h.logger.Debug().Int64("user_id", userID).Msg("realtime connection established")

	go h.writePump(c)
	go h.readPump(c)
	return nil
}

func (h *Hub) publish(env envelope, event models.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Err(err).Str("type", event.Type).Msg("error encoding realtime event")
		return
	}
	env.payload = payload

	select {
	case h.events <- env:
	case <-h.done:
	}
}

func (h *Hub) remove(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.gaugeAdd(-1)
}

func (h *Hub) gaugeAdd(v float64) {
	if h.connections != nil {
		h.connections.Add(v)
	}
}

// readPump discards client messages and keeps the read deadline alive. Its
// exit unregisters the client.
func (h *Hub) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug().Err(err).Int64("user_id", c.userID).Msg("realtime read error")
			}
			return
		}
	}
}

// writePump writes queued events and pings. It exits when the hub closes the
// send channel.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// originChecker accepts requests without an Origin header, from the
// server's own host, or from one of allowed.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || slices.Contains(allowed, "*") || slices.Contains(allowed, origin) {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Host, r.Host)
	}
}
