package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"calcd/application/transport"
	serverConfiguration "calcd/infrastructure/PAL/configuration/server"
	"calcd/infrastructure/settings"
	"calcd/infrastructure/telemetry/quizstats"
)

var errBoom = errors.New("boom")

type RunnerMockLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *RunnerMockLogger) Printf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

type RunnerMockHandler struct {
	handle func() error
}

func (h RunnerMockHandler) HandleTransport() error { return h.handle() }

type RunnerMockHandlerFactory struct {
	mu      sync.Mutex
	created []settings.Protocol
	create  func(ctx context.Context, s settings.Settings) (transport.Handler, error)
}

func (f *RunnerMockHandlerFactory) CreateHandler(ctx context.Context, s settings.Settings) (transport.Handler, error) {
	f.mu.Lock()
	f.created = append(f.created, s.Protocol)
	f.mu.Unlock()
	return f.create(ctx, s)
}

func (f *RunnerMockHandlerFactory) protocols() []settings.Protocol {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]settings.Protocol(nil), f.created...)
}

func blockUntilDone(ctx context.Context) transport.Handler {
	return RunnerMockHandler{handle: func() error {
		<-ctx.Done()
		return nil
	}}
}

func configurationWith(protocols ...settings.Protocol) serverConfiguration.Configuration {
	cfg := *serverConfiguration.NewDefaultConfiguration()
	cfg.UDPSettings.Enabled = false
	for _, p := range protocols {
		switch p {
		case settings.UDP:
			cfg.UDPSettings.Enabled = true
		case settings.TCP:
			cfg.TCPSettings.Enabled = true
		case settings.WS:
			cfg.WSSettings.Enabled = true
		}
	}
	return cfg
}

func TestRun_NoTransportEnabled(t *testing.T) {
	factory := &RunnerMockHandlerFactory{}
	r := NewRunner(NewDependencies(configurationWith(), factory), &RunnerMockLogger{})

	if err := r.Run(context.Background()); !errors.Is(err, ErrNoTransportEnabled) {
		t.Fatalf("expected ErrNoTransportEnabled, got %v", err)
	}
	if len(factory.protocols()) != 0 {
		t.Fatalf("no handler must be created, got %v", factory.protocols())
	}
}

func TestRun_StartsEveryEnabledTransport(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var started atomic.Int32
	factory := &RunnerMockHandlerFactory{
		create: func(ctx context.Context, _ settings.Settings) (transport.Handler, error) {
			started.Add(1)
			return blockUntilDone(ctx), nil
		},
	}
	r := NewRunner(NewDependencies(configurationWith(settings.UDP, settings.TCP, settings.WS), factory), &RunnerMockLogger{})

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for started.Load() != 3 {
		if time.Now().After(deadline) {
			t.Fatalf("expected 3 handlers, got %d", started.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil on cancellation, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRun_CreateErrorCancelsOthers(t *testing.T) {
	factory := &RunnerMockHandlerFactory{
		create: func(ctx context.Context, s settings.Settings) (transport.Handler, error) {
			if s.Protocol == settings.TCP {
				return nil, errBoom
			}
			return blockUntilDone(ctx), nil
		},
	}
	r := NewRunner(NewDependencies(configurationWith(settings.UDP, settings.TCP), factory), &RunnerMockLogger{})

	err := r.Run(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got %v", err)
	}
}

func TestRun_HandlerErrorIsReturned(t *testing.T) {
	factory := &RunnerMockHandlerFactory{
		create: func(context.Context, settings.Settings) (transport.Handler, error) {
			return RunnerMockHandler{handle: func() error { return errBoom }}, nil
		},
	}
	r := NewRunner(NewDependencies(configurationWith(settings.UDP), factory), &RunnerMockLogger{})

	err := r.Run(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got %v", err)
	}
}

func TestRun_HandlerErrorAfterCancellationIsIgnored(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	factory := &RunnerMockHandlerFactory{
		create: func(ctx context.Context, _ settings.Settings) (transport.Handler, error) {
			return RunnerMockHandler{handle: func() error {
				<-ctx.Done()
				return errBoom
			}}, nil
		},
	}
	r := NewRunner(NewDependencies(configurationWith(settings.TCP), factory), &RunnerMockLogger{})

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if err := r.Run(ctx); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestRun_ReportsTotalsOnExit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	factory := &RunnerMockHandlerFactory{
		create: func(ctx context.Context, _ settings.Settings) (transport.Handler, error) {
			return RunnerMockHandler{handle: func() error {
				quizstats.RecordIssued()
				<-ctx.Done()
				return nil
			}}, nil
		},
	}
	logger := &RunnerMockLogger{}
	r := NewRunner(NewDependencies(configurationWith(settings.UDP), factory), logger)
	r.statsInterval = time.Hour

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if err := r.Run(ctx); err != nil {
		t.Fatalf("expected nil on cancellation, got %v", err)
	}

	logger.mu.Lock()
	defer logger.mu.Unlock()
	if len(logger.lines) != 1 || !strings.Contains(logger.lines[0], "issued=1") {
		t.Fatalf("expected one totals line with issued=1, got %v", logger.lines)
	}
	if quizstats.Global() == nil {
		t.Fatal("runner must install a collector")
	}
}
