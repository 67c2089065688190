package transport

// Handler serves quiz conversations over one transport until its context is cancelled.
type Handler interface {
	HandleTransport() error
}
