//go:build !windows

package signal

import (
	"os"
	"syscall"
)

func (p *DefaultProvider) ShutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM}
}
