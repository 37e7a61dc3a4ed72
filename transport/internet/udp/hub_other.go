//go:build !linux

package udp

import (
	"github.com/simophin/cpxy/common/net"
	"github.com/simophin/cpxy/transport/internet"
)

func ListenTransparent(_ net.Address) (internet.Hub, error) {
	return nil, newError("transparent udp is not supported on this platform")
}

func ListenRedirect(_ net.Address) (internet.Hub, error) {
	return nil, newError("transparent udp is not supported on this platform")
}
