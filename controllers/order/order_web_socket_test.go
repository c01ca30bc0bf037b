package ordercontroller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/peermart/marketplace-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wsTestServer accepts websocket upgrades and drains incoming frames.
func wsTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestBroadcastEvictsDeadClients(t *testing.T) {
	srv := wsTestServer(t)
	defer srv.Close()

	dead := dialWS(t, srv)
	healthy := dialWS(t, srv)
	defer healthy.Close()

	wsMu.Lock()
	wsClients[dead] = true
	wsClients[healthy] = true
	wsMu.Unlock()
	t.Cleanup(func() {
		wsMu.Lock()
		delete(wsClients, dead)
		delete(wsClients, healthy)
		wsMu.Unlock()
	})

	// kill the transport under one client so its next write fails
	require.NoError(t, dead.UnderlyingConn().Close())

	broadcastOrderUpdate(models.Order{OrderRef: "ref-1", Status: models.OrderStatusPending})

	wsMu.Lock()
	_, deadStays := wsClients[dead]
	_, healthyStays := wsClients[healthy]
	wsMu.Unlock()
	assert.False(t, deadStays)
	assert.True(t, healthyStays)
}
