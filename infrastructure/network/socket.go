package network

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"
)

// Socket is a validated listen or dial address.
type Socket struct {
	host string
	port int
}

func NewSocket(host string, port int) (*Socket, error) {
	socket := &Socket{
		host: host,
		port: port,
	}

	if err := socket.validate(); err != nil {
		return nil, err
	}

	return socket, nil
}

// ParseSocket accepts "host:port". An empty host means all interfaces.
func ParseSocket(hostport string) (*Socket, error) {
	host, portStr, err := net.SplitHostPort(hostport)
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %w", hostport, err)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", portStr, err)
	}
	return NewSocket(host, int(port))
}

func (s *Socket) Host() string {
	return s.host
}

func (s *Socket) Port() int {
	return s.port
}

func (s *Socket) StringAddr() string {
	return net.JoinHostPort(s.host, strconv.Itoa(s.port))
}

func (s *Socket) UdpAddr() (*net.UDPAddr, error) {
	return net.ResolveUDPAddr("udp", s.StringAddr())
}

// IsIPv6 reports whether the host is a literal IPv6 address that is not IPv4-mapped.
func (s *Socket) IsIPv6() bool {
	addr, err := netip.ParseAddr(s.host)
	if err != nil {
		return false
	}
	return addr.Is6() && !addr.Is4In6()
}

func (s *Socket) validate() error {
	if s.host != "" {
		if strings.Contains(s.host, "%") {
			return fmt.Errorf("invalid IP %q: zone specifiers are not supported", s.host)
		}

		if _, err := netip.ParseAddr(s.host); err != nil {
			return fmt.Errorf("invalid IP %q: %w", s.host, err)
		}
	}

	if s.port <= 0 || s.port > 65535 {
		return fmt.Errorf("port must be in 1..65535, got %d", s.port)
	}

	return nil
}
