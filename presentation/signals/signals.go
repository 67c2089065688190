package signals

import "os"

type Notifier interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

// Handler starts watching for signals. Calling Handle more than once has no effect.
type Handler interface {
	Handle()
}
