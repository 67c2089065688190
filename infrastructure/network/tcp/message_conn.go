package tcp

import (
	"context"
	"errors"
	"net"
	"time"

	"calcd/application/listeners"
	"calcd/domain/network"
	"calcd/domain/network/calcproto"
)

// MaxMessageSize is the largest message read in one go. Each Read on the socket is one message.
const MaxMessageSize = calcproto.MaxTextSize + 1

// MessageConn treats each Read on a connection as one message. On UDP that is one datagram;
// on TCP it holds for the short single-write messages of the quiz protocol.
type MessageConn struct {
	conn net.Conn
	buf  []byte
}

func NewMessageConn(conn net.Conn) listeners.MessageConn {
	return &MessageConn{
		conn: conn,
		buf:  make([]byte, MaxMessageSize),
	}
}

func (c *MessageConn) ReadMessage(ctx context.Context) ([]byte, error) {
	deadline, _ := ctx.Deadline()
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	n, err := c.conn.Read(c.buf)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, ctx.Err()
		}
		if network.IsTimeout(err) {
			return nil, network.NewErrTimeout(err)
		}
		return nil, err
	}
	msg := make([]byte, n)
	copy(msg, c.buf[:n])
	return msg, nil
}

func (c *MessageConn) WriteMessage(ctx context.Context, data []byte) error {
	deadline, _ := ctx.Deadline()
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	_, err := c.conn.Write(data)
	return err
}

func (c *MessageConn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *MessageConn) Close() error {
	return c.conn.Close()
}
