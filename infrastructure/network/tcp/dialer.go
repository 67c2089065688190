package tcp

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"calcd/application/listeners"
)

type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

type Connection struct {
	addrPort netip.AddrPort
	dialer   Dialer
}

func NewConnection(addrPort netip.AddrPort) *Connection {
	return NewConnectionWithDialer(addrPort, &net.Dialer{})
}

func NewConnectionWithDialer(addrPort netip.AddrPort, dialer Dialer) *Connection {
	return &Connection{
		addrPort: addrPort,
		dialer:   dialer,
	}
}

// Establish dials the server and returns the connection with message framing applied.
func (c *Connection) Establish(ctx context.Context) (listeners.MessageConn, error) {
	conn, err := c.dialer.DialContext(ctx, "tcp", c.addrPort.String())
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", c.addrPort, err)
	}
	return NewMessageConn(conn), nil
}
