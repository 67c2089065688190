package server

import (
	"calcd/application/transport"
	serverConfiguration "calcd/infrastructure/PAL/configuration/server"
)

type AppDependencies interface {
	Configuration() serverConfiguration.Configuration
	HandlerFactory() transport.HandlerFactory
}

type Dependencies struct {
	configuration  serverConfiguration.Configuration
	handlerFactory transport.HandlerFactory
}

func NewDependencies(
	configuration serverConfiguration.Configuration,
	handlerFactory transport.HandlerFactory,
) AppDependencies {
	return &Dependencies{
		configuration:  configuration,
		handlerFactory: handlerFactory,
	}
}

func (d Dependencies) Configuration() serverConfiguration.Configuration {
	return d.configuration
}

func (d Dependencies) HandlerFactory() transport.HandlerFactory {
	return d.handlerFactory
}
