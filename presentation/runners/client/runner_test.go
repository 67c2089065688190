package client

import (
	"bytes"
	"context"
	"errors"
	"net/netip"
	"testing"

	"calcd/domain/arith"
	"calcd/infrastructure/quiz/probe"
)

type RunnerMockProber struct {
	mode   probe.Mode
	addr   netip.AddrPort
	result probe.Result
	err    error
}

func (p *RunnerMockProber) Probe(_ context.Context, mode probe.Mode, addr netip.AddrPort) (probe.Result, error) {
	p.mode, p.addr = mode, addr
	return p.result, p.err
}

func TestRunner_Run_PrintsTranscript(t *testing.T) {
	prober := &RunnerMockProber{result: probe.Result{
		Task:    arith.Task{Operator: arith.IntAdd, IntValue1: 2, IntValue2: 3},
		Answer:  "5",
		Verdict: "RESULT: correct",
	}}
	addr := netip.MustParseAddrPort("127.0.0.1:5000")

	var out bytes.Buffer
	if err := NewRunner(prober, probe.UDPText, addr, &out).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if prober.mode != probe.UDPText || prober.addr != addr {
		t.Fatalf("probed %s %s", prober.mode, prober.addr)
	}
	want := "task:    2 + 3\nanswer:  5\nverdict: RESULT: correct\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestRunner_Run_WrapsProbeError(t *testing.T) {
	boom := errors.New("boom")
	var out bytes.Buffer
	err := NewRunner(&RunnerMockProber{err: boom}, probe.TCPText, netip.MustParseAddrPort("[::1]:5001"), &out).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing must be printed on error, got %q", out.String())
	}
}
