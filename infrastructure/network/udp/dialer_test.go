package udp

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"testing"
)

type mockDialer struct {
	network string
	address string
	conn    net.Conn
	err     error
}

func (m *mockDialer) DialContext(_ context.Context, network, address string) (net.Conn, error) {
	m.network, m.address = network, address
	return m.conn, m.err
}

func TestConnection_Establish_Success(t *testing.T) {
	server, client := net.Pipe()
	defer func() { _ = server.Close() }()

	d := &mockDialer{conn: client}
	conn, err := NewConnectionWithDialer(netip.MustParseAddrPort("127.0.0.1:4321"), d).Establish(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if conn != client {
		t.Fatal("expected the dialed connection")
	}
	if d.network != "udp" || d.address != "127.0.0.1:4321" {
		t.Fatalf("dialed %s %s", d.network, d.address)
	}
}

func TestConnection_Establish_Error(t *testing.T) {
	boom := errors.New("dial fail")
	_, err := NewConnectionWithDialer(netip.MustParseAddrPort("[::1]:4321"), &mockDialer{err: boom}).Establish(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped dial error, got %v", err)
	}
}

func TestConnection_Establish_Loopback(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer func() { _ = pc.Close() }()

	addr := pc.LocalAddr().(*net.UDPAddr).AddrPort()
	conn, err := NewConnection(addr).Establish(context.Background())
	if err != nil {
		t.Fatalf("Establish: %v", err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.Write([]byte("ping")); err != nil {
		t.Fatalf("write: %v", err)
	}
	buf := make([]byte, 8)
	n, _, err := pc.ReadFrom(buf)
	if err != nil || string(buf[:n]) != "ping" {
		t.Fatalf("read %q, %v", buf[:n], err)
	}
}
