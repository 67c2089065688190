package network

import "net"

// ListenConfig returns a listen config that allows a restarted server to rebind its port immediately.
func ListenConfig() net.ListenConfig {
	return net.ListenConfig{Control: reuseAddrControl}
}
