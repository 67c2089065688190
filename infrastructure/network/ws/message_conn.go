//go:build !js

package ws

import (
	"context"
	"errors"
	"net"
	"sync"

	"calcd/application/listeners"
	"calcd/domain/network"
	"calcd/domain/network/calcproto"

	"github.com/coder/websocket"
)

// MessageConn maps one WebSocket message to one quiz message.
//
// coder/websocket closes the connection when a Read context expires, so reads run on the
// connection's own context in a background goroutine and ReadMessage only waits on them.
// A timed out ReadMessage leaves the connection usable for a final reply.
type MessageConn struct {
	conn     *websocket.Conn
	remote   net.Addr
	ctx      context.Context
	cancel   context.CancelFunc
	messages chan message
	readOnce sync.Once
}

type message struct {
	data []byte
	err  error
}

func NewMessageConn(conn *websocket.Conn, remote net.Addr) listeners.MessageConn {
	ctx, cancel := context.WithCancel(context.Background())
	return &MessageConn{
		conn:     conn,
		remote:   remote,
		ctx:      ctx,
		cancel:   cancel,
		messages: make(chan message, 1),
	}
}

func (c *MessageConn) ReadMessage(ctx context.Context) ([]byte, error) {
	c.readOnce.Do(func() { go c.readLoop() })

	select {
	case msg := <-c.messages:
		return msg.data, msg.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, network.NewErrTimeout(ctx.Err())
		}
		return nil, ctx.Err()
	}
}

func (c *MessageConn) readLoop() {
	for {
		_, data, err := c.conn.Read(c.ctx)
		select {
		case c.messages <- message{data: data, err: err}:
		case <-c.ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

func (c *MessageConn) WriteMessage(ctx context.Context, data []byte) error {
	typ := websocket.MessageBinary
	if calcproto.IsText(data) {
		typ = websocket.MessageText
	}
	return c.conn.Write(ctx, typ, data)
}

func (c *MessageConn) RemoteAddr() net.Addr {
	return c.remote
}

func (c *MessageConn) Close() error {
	c.cancel()
	return c.conn.Close(websocket.StatusNormalClosure, "")
}
