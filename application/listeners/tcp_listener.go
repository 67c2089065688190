package listeners

import "net"

type TcpListener interface {
	Accept() (net.Conn, error)
	Addr() net.Addr
	Close() error
}
