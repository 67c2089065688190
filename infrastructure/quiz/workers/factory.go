package workers

import (
	"context"
	"fmt"

	"calcd/application/transport"
	"calcd/infrastructure/PAL/configuration/server"
	"calcd/infrastructure/logging"
	"calcd/infrastructure/network/tcp"
	"calcd/infrastructure/network/udp"
	"calcd/infrastructure/network/ws"
	"calcd/infrastructure/quiz"
	"calcd/infrastructure/quiz/datagram"
	"calcd/infrastructure/quiz/stream"
	"calcd/infrastructure/session"
	"calcd/infrastructure/settings"
)

type HandlerFactory struct {
	configuration server.Configuration
	tasks         quiz.TaskSource
	grader        quiz.Grader
}

func NewHandlerFactory(configuration server.Configuration, tasks quiz.TaskSource) transport.HandlerFactory {
	return &HandlerFactory{
		configuration: configuration,
		tasks:         tasks,
		grader:        quiz.NewGrader(configuration.Grading),
	}
}

func (f *HandlerFactory) CreateHandler(ctx context.Context, s settings.Settings) (transport.Handler, error) {
	switch s.Protocol {
	case settings.UDP:
		return f.createDatagramHandler(ctx, s)
	case settings.TCP:
		return f.createTCPHandler(ctx, s)
	case settings.WS:
		return f.createWSHandler(ctx, s)
	default:
		return nil, fmt.Errorf("unsupported protocol: %v", s.Protocol)
	}
}

func (f *HandlerFactory) createDatagramHandler(ctx context.Context, s settings.Settings) (transport.Handler, error) {
	socket, socketErr := s.Socket()
	if socketErr != nil {
		return nil, socketErr
	}
	conn, listenErr := udp.Listen(ctx, socket, udp.SocketOptions{
		ReadBuffer:  f.configuration.Socket.ReadBuffer,
		WriteBuffer: f.configuration.Socket.WriteBuffer,
		TOS:         f.configuration.Socket.TOS,
	})
	if listenErr != nil {
		return nil, listenErr
	}

	sessions := session.NewTable(f.configuration.Session.Capacity, f.configuration.Session.Timeout)
	return datagram.NewDispatcher(
		ctx,
		conn,
		sessions,
		f.tasks,
		f.grader,
		f.configuration.Session.SweepInterval,
		logging.NewComponentLogger("udp"),
	), nil
}

func (f *HandlerFactory) createTCPHandler(ctx context.Context, s settings.Settings) (transport.Handler, error) {
	socket, socketErr := s.Socket()
	if socketErr != nil {
		return nil, socketErr
	}
	listener, listenErr := tcp.Listen(ctx, socket.StringAddr())
	if listenErr != nil {
		return nil, listenErr
	}
	return stream.NewServer(
		ctx,
		"TCP",
		listener,
		stream.NewHandler(f.tasks, f.configuration.Stream.Timeout),
		logging.NewComponentLogger("tcp"),
	), nil
}

func (f *HandlerFactory) createWSHandler(ctx context.Context, s settings.Settings) (transport.Handler, error) {
	socket, socketErr := s.Socket()
	if socketErr != nil {
		return nil, socketErr
	}
	logger := logging.NewComponentLogger("ws")
	listener, listenErr := ws.Listen(ctx, socket.StringAddr(), s.Path, logger)
	if listenErr != nil {
		return nil, listenErr
	}
	return stream.NewServer(
		ctx,
		"WebSocket",
		listener,
		stream.NewHandler(f.tasks, f.configuration.Stream.Timeout),
		logger,
	), nil
}
