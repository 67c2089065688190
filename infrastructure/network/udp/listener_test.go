package udp

import (
	"context"
	"net"
	"testing"
	"time"

	"calcd/infrastructure/network"
)

func TestListenAddr_EchoOverLoopback(t *testing.T) {
	conn, err := ListenAddr(context.Background(), "127.0.0.1:0", SocketOptions{
		ReadBuffer:  64 * 1024,
		WriteBuffer: 64 * 1024,
	})
	if err != nil {
		t.Fatalf("ListenAddr: %v", err)
	}
	defer func() { _ = conn.Close() }()

	client, err := net.DialUDP("udp", nil, conn.LocalAddr().(*net.UDPAddr))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer func() { _ = client.Close() }()

	if _, err := client.Write([]byte("ping")); err != nil {
		t.Fatalf("write: %v", err)
	}

	buf := make([]byte, 16)
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, from, err := conn.ReadFromUDPAddrPort(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(buf[:n]) != "ping" {
		t.Fatalf("got %q", buf[:n])
	}
	if from.Port() != uint16(client.LocalAddr().(*net.UDPAddr).Port) {
		t.Fatalf("unexpected source %v", from)
	}
}

func TestListenAddr_AppliesTOS(t *testing.T) {
	conn, err := ListenAddr(context.Background(), "127.0.0.1:0", SocketOptions{TOS: 0x10})
	if err != nil {
		t.Fatalf("ListenAddr with TOS: %v", err)
	}
	_ = conn.Close()
}

func TestListen_ValidatedSocket(t *testing.T) {
	probe, err := ListenAddr(context.Background(), "127.0.0.1:0", SocketOptions{})
	if err != nil {
		t.Fatalf("ListenAddr: %v", err)
	}
	port := probe.LocalAddr().(*net.UDPAddr).Port
	_ = probe.Close()

	socket, err := network.NewSocket("127.0.0.1", port)
	if err != nil {
		t.Fatalf("NewSocket: %v", err)
	}
	conn, err := Listen(context.Background(), socket, SocketOptions{})
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	_ = conn.Close()
}

func TestListenAddr_InvalidAddress(t *testing.T) {
	if _, err := ListenAddr(context.Background(), "not-an-addr", SocketOptions{}); err == nil {
		t.Fatal("expected error")
	}
}
