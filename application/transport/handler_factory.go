package transport

import (
	"context"

	"calcd/infrastructure/settings"
)

// HandlerFactory binds the endpoint described by settings and returns the handler serving it.
// The handler owns the bound socket and closes it when HandleTransport returns.
type HandlerFactory interface {
	CreateHandler(ctx context.Context, settings settings.Settings) (Handler, error)
}
