package network

import (
	"testing"
)

func TestNewSocket_ValidIPv4(t *testing.T) {
	s, err := NewSocket("127.0.0.1", 8080)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := "127.0.0.1:8080"
	if got := s.StringAddr(); got != want {
		t.Errorf("StringAddr() = %q; want %q", got, want)
	}

	udp, err := s.UdpAddr()
	if err != nil {
		t.Fatalf("expected no error from UdpAddr(), got %v", err)
	}
	if udp.String() != want {
		t.Errorf("UdpAddr().String() = %q; want %q", udp.String(), want)
	}
	if s.IsIPv6() {
		t.Error("IPv4 socket reported as IPv6")
	}
}

func TestNewSocket_ValidIPv6(t *testing.T) {
	s, err := NewSocket("::1", 9090)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := "[::1]:9090"
	if got := s.StringAddr(); got != want {
		t.Errorf("StringAddr() = %q; want %q", got, want)
	}
	if !s.IsIPv6() {
		t.Error("IPv6 socket not reported as IPv6")
	}
}

func TestNewSocket_EmptyHostListensOnAll(t *testing.T) {
	s, err := NewSocket("", 5000)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := s.StringAddr(); got != ":5000" {
		t.Errorf("StringAddr() = %q; want %q", got, ":5000")
	}
}

func TestNewSocket_InvalidIP(t *testing.T) {
	if _, err := NewSocket("not.an.ip", 1234); err == nil {
		t.Fatal("expected error for invalid IP, got nil")
	}
}

func TestNewSocket_RejectsZone(t *testing.T) {
	if _, err := NewSocket("fe80::1%eth0", 1234); err == nil {
		t.Fatal("expected error for zoned IP, got nil")
	}
}

func TestNewSocket_PortRange(t *testing.T) {
	for _, port := range []int{0, -1, 65536} {
		if _, err := NewSocket("127.0.0.1", port); err == nil {
			t.Fatalf("expected error for port=%d, got nil", port)
		}
	}
}

func TestParseSocket(t *testing.T) {
	s, err := ParseSocket("0.0.0.0:5000")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s.Host() != "0.0.0.0" || s.Port() != 5000 {
		t.Fatalf("got %s:%d", s.Host(), s.Port())
	}

	for _, bad := range []string{"5000", "127.0.0.1:port", "127.0.0.1:70000", "127.0.0.1:0"} {
		if _, err := ParseSocket(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
