package proxy

import (
	"github.com/simophin/cpxy/common/net"
	"github.com/simophin/cpxy/common/session"
	"github.com/simophin/cpxy/transport/internet"
)

// An Server processes inbound connections.
type Server interface {
	Process(session.Content, net.Conn, Client) error
}

// An Client processes outbound connections.
type Client interface {
	Process(session.Content, net.Address, net.Conn, internet.DialUDPFunc) error
}
