package client

import (
	"context"
	"fmt"
	"io"
	"net/netip"

	"calcd/infrastructure/quiz/probe"
)

type Prober interface {
	Probe(ctx context.Context, mode probe.Mode, addr netip.AddrPort) (probe.Result, error)
}

// Runner performs one probe conversation and prints its transcript.
type Runner struct {
	prober Prober
	mode   probe.Mode
	addr   netip.AddrPort
	out    io.Writer
}

func NewRunner(prober Prober, mode probe.Mode, addr netip.AddrPort, out io.Writer) *Runner {
	return &Runner{
		prober: prober,
		mode:   mode,
		addr:   addr,
		out:    out,
	}
}

func (r *Runner) Run(ctx context.Context) error {
	result, err := r.prober.Probe(ctx, r.mode, r.addr)
	if err != nil {
		return fmt.Errorf("probe %s %s: %w", r.mode, r.addr, err)
	}
	_, err = fmt.Fprintf(r.out, "task:    %s\nanswer:  %s\nverdict: %s\n", result.Task, result.Answer, result.Verdict)
	return err
}
