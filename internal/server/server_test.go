package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/emberforge/ember-server-go/internal/config"
	"github.com/emberforge/ember-server-go/internal/game/state"
)

func newTestServer(t *testing.T) (*Server, *state.Bus, *httptest.Server) {
	t.Helper()
	bus := state.NewBus()
	snap := func() state.Snapshot {
		return state.Snapshot{Turn: 3, Current: "Alice"}
	}
	s := New(config.ServerConfig{Address: ":0", ShutdownTimeout: time.Second}, bus, snap, zaptest.NewLogger(t))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, bus, ts
}

func TestHealthEndpoint(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStateEndpointServesSnapshot(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	var snap state.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, 3, snap.Turn)
	assert.Equal(t, "Alice", snap.Current)
}

func TestWebSocketStreamsBusEvents(t *testing.T) {
	_, bus, ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	// The subscription is registered during the upgrade handler; give the
	// handler goroutine a moment before publishing.
	require.Eventually(t, func() bool {
		bus.Publish(state.Event{Kind: state.EventDamage, Entity: "Raptor", Amount: 2})
		_ = conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		var ev state.Event
		return conn.ReadJSON(&ev) == nil && ev.Kind == state.EventDamage
	}, 5*time.Second, 50*time.Millisecond)
}
