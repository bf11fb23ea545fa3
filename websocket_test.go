package aori

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

// echoServer upgrades incoming connections and echoes every frame back
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			messageType, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(messageType, data); err != nil {
				return
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestChannelRoundTrip(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	ch, err := DialChannel(context.Background(), wsURL(srv))
	if err != nil {
		t.Fatalf("DialChannel: %v", err)
	}
	defer ch.Close()

	if !ch.IsConnected() {
		t.Error("channel not connected after dial")
	}

	if err := ch.SendText(`{"id":1,"jsonrpc":"2.0","method":"aori_ping","params":[]}`); err != nil {
		t.Fatalf("SendText: %v", err)
	}

	frame, err := ch.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if !strings.Contains(string(frame), "aori_ping") {
		t.Errorf("echoed frame = %s", frame)
	}
}

func TestDialChannelUnreachable(t *testing.T) {
	_, err := DialChannel(context.Background(), "ws://127.0.0.1:1")
	if err == nil {
		t.Fatal("expected connection error")
	}

	var connErr *ConnectError
	if !errors.As(err, &connErr) {
		t.Fatalf("err = %T, want *ConnectError", err)
	}
	if connErr.Endpoint != "ws://127.0.0.1:1" {
		t.Errorf("endpoint = %s", connErr.Endpoint)
	}
}

func TestSendAfterClose(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	ch, err := DialChannel(context.Background(), wsURL(srv))
	if err != nil {
		t.Fatalf("DialChannel: %v", err)
	}

	if err := ch.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if ch.IsConnected() {
		t.Error("channel still connected after close")
	}

	if err := ch.SendText("late"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("err = %v, want ErrNotConnected", err)
	}

	// Closing twice is a no-op
	if err := ch.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
