package tcp

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"testing"
	"time"
)

type failingDialer struct {
	err error
}

func (d failingDialer) DialContext(context.Context, string, string) (net.Conn, error) {
	return nil, d.err
}

func TestConnection_Establish_Error(t *testing.T) {
	boom := errors.New("refused")
	_, err := NewConnectionWithDialer(netip.MustParseAddrPort("127.0.0.1:1"), failingDialer{err: boom}).Establish(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped dial error, got %v", err)
	}
}

func TestConnection_Establish_Exchange(t *testing.T) {
	l, err := Listen(context.Background(), "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer func() { _ = l.Close() }()

	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()
		msg, err := conn.ReadMessage(context.Background())
		if err != nil {
			return
		}
		_ = conn.WriteMessage(context.Background(), msg)
	}()

	addr := l.Addr().(*net.TCPAddr).AddrPort()
	conn, err := NewConnection(addr).Establish(context.Background())
	if err != nil {
		t.Fatalf("Establish: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := conn.WriteMessage(ctx, []byte("echo")); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := conn.ReadMessage(ctx)
	if err != nil || string(got) != "echo" {
		t.Fatalf("read %q, %v", got, err)
	}
}
