//go:build !unix

package network

import "syscall"

func reuseAddrControl(_, _ string, _ syscall.RawConn) error {
	return nil
}
