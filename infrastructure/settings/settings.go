package settings

import (
	"calcd/infrastructure/network"
)

// Settings describe one listening endpoint.
type Settings struct {
	Protocol Protocol
	Enabled  bool
	Host     string
	Port     int
	// Path is the HTTP path of the WebSocket endpoint. Other protocols ignore it.
	Path string
}

func (s Settings) Socket() (*network.Socket, error) {
	return network.NewSocket(s.Host, s.Port)
}
