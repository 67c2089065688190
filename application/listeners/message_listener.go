package listeners

import (
	"context"
	"net"
)

// MessageConn is a stream connection that preserves message boundaries:
// one WriteMessage on one side is one ReadMessage on the other.
type MessageConn interface {
	// ReadMessage blocks until a message arrives or ctx is done. An expired ctx deadline
	// is reported as a timeout error.
	ReadMessage(ctx context.Context) ([]byte, error)
	WriteMessage(ctx context.Context, data []byte) error
	RemoteAddr() net.Addr
	Close() error
}

// MessageListener accepts message connections from a TCP or WebSocket endpoint.
type MessageListener interface {
	Accept() (MessageConn, error)
	Addr() net.Addr
	Close() error
}
