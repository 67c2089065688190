package stream

import (
	"context"
	"errors"
	"net"
	"sync"

	"calcd/application/listeners"
	"calcd/application/logging"
	"calcd/application/transport"
	"calcd/infrastructure/telemetry/quizstats"
)

// Server accepts connections from a message listener and serves each on its own goroutine.
type Server struct {
	ctx      context.Context
	name     string
	listener listeners.MessageListener
	handler  *Handler
	logger   logging.Logger
}

func NewServer(
	ctx context.Context,
	name string,
	listener listeners.MessageListener,
	handler *Handler,
	logger logging.Logger,
) *Server {
	return &Server{
		ctx:      ctx,
		name:     name,
		listener: listener,
		handler:  handler,
		logger:   logger,
	}
}

var _ transport.Handler = (*Server)(nil)

func (s *Server) HandleTransport() error {
	defer func(listener listeners.MessageListener) {
		_ = listener.Close()
	}(s.listener)

	s.logger.Printf("quiz server listening on %s (%s)", s.listener.Addr(), s.name)

	go func() {
		<-s.ctx.Done()
		_ = s.listener.Close()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			s.logger.Printf("failed to accept %s connection: %s", s.name, err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.serve(conn)
		}()
	}
}

func (s *Server) serve(conn listeners.MessageConn) {
	defer func() {
		_ = conn.Close()
	}()
	quizstats.RecordStream()
	outcome, err := s.handler.Serve(s.ctx, conn)
	if err != nil {
		if s.ctx.Err() == nil {
			s.logger.Printf("%s %s: %s", s.name, conn.RemoteAddr(), err)
		}
		return
	}
	s.logger.Printf("%s %s: %s", s.name, conn.RemoteAddr(), outcome)
}
