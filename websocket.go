package aori

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// Channel is a long-lived bidirectional message channel. The session
// owns two of them: one for requests and one for the market-data feed.
type Channel interface {
	// SendText writes a single text frame
	SendText(text string) error

	// Receive blocks until the next frame arrives and returns its payload
	Receive() ([]byte, error)

	// Close tears the channel down
	Close() error
}

// WSChannel is a Channel backed by a websocket connection. Sends are
// serialized with a mutex; receives are expected from a single reader.
type WSChannel struct {
	conn      *websocket.Conn
	mu        sync.Mutex
	connected bool
}

// DialChannel establishes a websocket channel to the given endpoint.
// A failed dial is fatal; there is no retry.
func DialChannel(ctx context.Context, endpoint string) (*WSChannel, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, &ConnectError{Endpoint: endpoint, Err: err}
	}

	return &WSChannel{
		conn:      conn,
		connected: true,
	}, nil
}

// SendText writes a single text frame to the channel
func (ch *WSChannel) SendText(text string) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if !ch.connected || ch.conn == nil {
		return ErrNotConnected
	}

	if err := ch.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// Receive blocks until a frame arrives and returns its payload. The
// frame type is not inspected; correlation is the caller's concern.
func (ch *WSChannel) Receive() ([]byte, error) {
	_, data, err := ch.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("failed to read frame: %w", err)
	}
	return data, nil
}

// Close closes the underlying connection
func (ch *WSChannel) Close() error {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if !ch.connected {
		return nil
	}
	ch.connected = false

	return ch.conn.Close()
}

// IsConnected returns the current connection status
func (ch *WSChannel) IsConnected() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.connected
}
