package monitor

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/murmurapp/murmur/pkg/session"
)

func dialState(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/state"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMsg(t *testing.T, conn *websocket.Conn) stateMsg {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg stateMsg
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read state: %v", err)
	}
	return msg
}

func TestServer_StateFeed(t *testing.T) {
	orch := session.New(session.Config{})
	srv := httptest.NewServer(NewServer(orch, nil).Handler())
	defer srv.Close()

	conn := dialState(t, srv)

	// The initial snapshot arrives without any state change.
	first := readMsg(t, conn)
	if first.Phase != "idle" {
		t.Fatalf("initial phase = %q, want idle", first.Phase)
	}
	if len(first.Waveform) != 32 {
		t.Fatalf("waveform has %d buckets, want 32", len(first.Waveform))
	}

	// A state change is pushed to the client.
	orch.UpdateName("team sync")
	for {
		msg := readMsg(t, conn)
		if msg.Name == "team sync" {
			break
		}
	}
}

func TestServer_MultipleClients(t *testing.T) {
	orch := session.New(session.Config{})
	srv := httptest.NewServer(NewServer(orch, nil).Handler())
	defer srv.Close()

	a := dialState(t, srv)
	b := dialState(t, srv)
	readMsg(t, a)
	readMsg(t, b)

	orch.UpdateName("shared")
	for _, conn := range []*websocket.Conn{a, b} {
		for {
			msg := readMsg(t, conn)
			if msg.Name == "shared" {
				break
			}
		}
	}
}
