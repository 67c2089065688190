package tcp

import (
	"context"
	"fmt"
	"net"

	"calcd/application/listeners"
	"calcd/infrastructure/network"
)

// compile-time check (Listener must implement listeners.MessageListener)
var _ listeners.MessageListener = (*Listener)(nil)

type Listener struct {
	ln listeners.TcpListener
}

// Listen binds addr with the shared listen config.
func Listen(ctx context.Context, addr string) (*Listener, error) {
	lc := network.ListenConfig()
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return NewListener(ln), nil
}

func NewListener(ln listeners.TcpListener) *Listener {
	return &Listener{ln: ln}
}

func (l *Listener) Accept() (listeners.MessageConn, error) {
	conn, err := l.ln.Accept()
	if err != nil {
		return nil, err
	}
	return NewMessageConn(conn), nil
}

func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

func (l *Listener) Close() error {
	return l.ln.Close()
}
