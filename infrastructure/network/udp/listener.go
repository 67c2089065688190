package udp

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"calcd/infrastructure/network"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// SocketOptions are applied to a UDP socket right after it is bound. Zero values keep the OS defaults.
type SocketOptions struct {
	ReadBuffer  int
	WriteBuffer int
	// TOS is the IPv4 type-of-service byte, or the IPv6 traffic class.
	TOS int
}

// Listen binds socket and applies opts.
func Listen(ctx context.Context, socket *network.Socket, opts SocketOptions) (*net.UDPConn, error) {
	return ListenAddr(ctx, socket.StringAddr(), opts)
}

// ListenAddr is Listen for an unvalidated address such as "127.0.0.1:0".
func ListenAddr(ctx context.Context, addr string, opts SocketOptions) (*net.UDPConn, error) {
	lc := network.ListenConfig()
	pc, err := lc.ListenPacket(ctx, "udp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	conn, ok := pc.(*net.UDPConn)
	if !ok {
		_ = pc.Close()
		return nil, fmt.Errorf("unexpected packet conn type %T", pc)
	}
	if err := ApplyOptions(conn, opts); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

func ApplyOptions(conn *net.UDPConn, opts SocketOptions) error {
	if opts.ReadBuffer > 0 {
		if err := conn.SetReadBuffer(opts.ReadBuffer); err != nil {
			return fmt.Errorf("failed to set read buffer: %w", err)
		}
	}
	if opts.WriteBuffer > 0 {
		if err := conn.SetWriteBuffer(opts.WriteBuffer); err != nil {
			return fmt.Errorf("failed to set write buffer: %w", err)
		}
	}
	if opts.TOS > 0 {
		if err := setTOS(conn, opts.TOS); err != nil {
			return fmt.Errorf("failed to set tos %d: %w", opts.TOS, err)
		}
	}
	return nil
}

func setTOS(conn *net.UDPConn, tos int) error {
	local, _ := netip.ParseAddrPort(conn.LocalAddr().String())
	if local.Addr().Is6() && !local.Addr().Is4In6() && !local.Addr().IsUnspecified() {
		return ipv6.NewPacketConn(conn).SetTrafficClass(tos)
	}
	return ipv4.NewPacketConn(conn).SetTOS(tos)
}
