package listeners

import (
	"net"
	"net/netip"
	"time"
)

// UdpListener is the subset of *net.UDPConn used by the datagram loop.
type UdpListener interface {
	Close() error
	LocalAddr() net.Addr
	ReadFromUDPAddrPort(b []byte) (n int, addr netip.AddrPort, err error)
	SetReadDeadline(t time.Time) error
	SetReadBuffer(size int) error
	SetWriteBuffer(size int) error
	WriteToUDPAddrPort(data []byte, addr netip.AddrPort) (int, error)
}
