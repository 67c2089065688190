//go:build unix

package network

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

func reuseAddrControl(_, _ string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	if sockErr != nil {
		return fmt.Errorf("failed to set SO_REUSEADDR: %w", sockErr)
	}
	return nil
}
