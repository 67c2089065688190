//go:build !js

package ws

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"calcd/application/listeners"
	"calcd/application/logging"
	"calcd/domain/network/calcproto"
	"calcd/infrastructure/network"

	"github.com/coder/websocket"
)

const (
	DefaultPath     = "/quiz"
	queueSize       = 128
	shutdownTimeout = 2 * time.Second
)

// compile-time check (Listener must implement listeners.MessageListener)
var _ listeners.MessageListener = (*Listener)(nil)

// Listener upgrades HTTP requests on one path to WebSocket and hands them out through Accept,
// bringing net.Listener semantics to an http.Server.
type Listener struct {
	ln        net.Listener
	srv       *http.Server
	queue     chan listeners.MessageConn
	closeOnce sync.Once
	closed    chan struct{}
	logger    logging.Logger
}

// Listen binds addr and serves WebSocket upgrades on path until ctx is cancelled or Close is called.
func Listen(ctx context.Context, addr, path string, logger logging.Logger) (*Listener, error) {
	lc := network.ListenConfig()
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return NewListener(ctx, ln, path, logger)
}

func NewListener(ctx context.Context, ln net.Listener, path string, logger logging.Logger) (*Listener, error) {
	if path == "" {
		path = DefaultPath
	}
	if path[0] != '/' {
		return nil, fmt.Errorf("invalid websocket path %q", path)
	}

	l := &Listener{
		ln:     ln,
		queue:  make(chan listeners.MessageConn, queueSize),
		closed: make(chan struct{}),
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc(path, l.handle)
	l.srv = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if sErr := l.srv.Serve(ln); sErr != nil && !errors.Is(sErr, http.ErrServerClosed) {
			l.logger.Printf("websocket server stopped: %s", sErr)
		}
		_ = l.Close()
	}()
	go func() {
		select {
		case <-ctx.Done():
			_ = l.Close()
		case <-l.closed:
		}
	}()

	return l, nil
}

func (l *Listener) handle(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionDisabled,
	})
	if err != nil {
		l.logger.Printf("websocket upgrade from %s failed: %s", r.RemoteAddr, err)
		return
	}
	c.SetReadLimit(calcproto.MaxTextSize + 1)

	select {
	case l.queue <- NewMessageConn(c, parseTCPAddr(r.RemoteAddr)):
	case <-l.closed:
		_ = c.Close(websocket.StatusGoingAway, "server shutting down")
	default:
		_ = c.Close(websocket.StatusTryAgainLater, "queue full")
	}
}

func (l *Listener) Accept() (listeners.MessageConn, error) {
	select {
	case c := <-l.queue:
		return c, nil
	case <-l.closed:
		return nil, net.ErrClosed
	}
}

func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

func (l *Listener) Close() error {
	l.closeOnce.Do(func() {
		close(l.closed)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = l.srv.Shutdown(ctx)
	})
	return nil
}

func parseTCPAddr(s string) net.Addr {
	host, port, _ := net.SplitHostPort(s)
	p, _ := strconv.Atoi(port)
	return &net.TCPAddr{IP: net.ParseIP(host), Port: p}
}
