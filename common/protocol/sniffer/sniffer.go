package sniffer

import (
	"github.com/simophin/cpxy/common/buffer"
	"github.com/simophin/cpxy/common/net"
)

type Protocol byte

const (
	DNS Protocol = iota
	QUIC
)

func (p Protocol) String() string {
	switch p {
	case DNS:
		return "dns"
	case QUIC:
		return "quic"
	default:
		return "unknown"
	}
}

type Sniffer interface {
	Protocol() Protocol
	Sniff(*buffer.Buffer, net.Address) (SniffResult, error)
}

type SniffResult struct {
	Protocol Protocol
	Domain   string
}

func (s SniffResult) AsAddress(address net.Address) net.Address {
	address.Domain = net.Domain(s.Domain)
	address.IP = nil

	return address
}

func (s SniffResult) IsValid() bool {
	return len(s.Domain) > 0
}
