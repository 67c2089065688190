package settings

import (
	"errors"
	"strings"
)

var (
	ErrInvalidProtocol = errors.New("invalid protocol")
)

// Protocol specifies the transport a quiz server listens on.
type Protocol int

const (
	UNKNOWN = iota
	TCP
	UDP
	WS
)

func (p Protocol) MarshalText() ([]byte, error) {
	switch p {
	case UNKNOWN, TCP, UDP, WS:
		return []byte(p.String()), nil
	default:
		return nil, ErrInvalidProtocol
	}
}

func (p *Protocol) UnmarshalText(data []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(data))) {
	case "UNKNOWN":
		*p = UNKNOWN
	case "TCP":
		*p = TCP
	case "UDP":
		*p = UDP
	case "WS":
		*p = WS
	default:
		return ErrInvalidProtocol
	}
	return nil
}

func (p Protocol) String() string {
	switch p {
	case UNKNOWN:
		return "UNKNOWN"
	case TCP:
		return "TCP"
	case UDP:
		return "UDP"
	case WS:
		return "WS"
	default:
		return ErrInvalidProtocol.Error()
	}
}
