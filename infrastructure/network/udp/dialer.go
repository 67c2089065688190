package udp

import (
	"context"
	"fmt"
	"net"
	"net/netip"
)

type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Connection is a connected UDP client socket factory for one server address.
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

func (c *Connection) Establish(ctx context.Context) (net.Conn, error) {
	conn, err := c.dialer.DialContext(ctx, "udp", c.addrPort.String())
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", c.addrPort, err)
	}
	return conn, nil
}
