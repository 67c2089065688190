package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"calcd/application/logging"
	palSignal "calcd/infrastructure/PAL/signal"
	"calcd/presentation/signals"
)

// Handler cancels the application context on the first shutdown signal.
type Handler struct {
	appCtx       context.Context
	appCtxCancel context.CancelFunc
	// 1-sized: os/signal uses non-blocking sends and drops signals on an unbuffered channel.
	signalChan     chan os.Signal
	once           sync.Once
	signalProvider palSignal.Provider
	notifier       signals.Notifier
	logger         logging.Logger
}

func NewHandler(
	appCtx context.Context,
	appCtxCancel context.CancelFunc,
	signalProvider palSignal.Provider,
	notifier signals.Notifier,
	logger logging.Logger,
) signals.Handler {
	return &Handler{
		appCtx:         appCtx,
		appCtxCancel:   appCtxCancel,
		signalChan:     make(chan os.Signal, 1),
		signalProvider: signalProvider,
		notifier:       notifier,
		logger:         logger,
	}
}

func (h *Handler) Handle() {
	h.once.Do(func() {
		h.notifier.Notify(h.signalChan, h.signalProvider.ShutdownSignals()...)
		go h.wait()
	})
}

func (h *Handler) wait() {
	defer h.notifier.Stop(h.signalChan)
	select {
	case sig := <-h.signalChan:
		h.logger.Printf("%s received, shutting down", sig)
		h.appCtxCancel()
	case <-h.appCtx.Done():
	}
}

// OSNotifier subscribes through os/signal.
type OSNotifier struct{}

func NewOSNotifier() signals.Notifier {
	return OSNotifier{}
}

func (OSNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (OSNotifier) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}
