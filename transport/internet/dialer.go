package internet

import (
	"syscall"

	"github.com/simophin/cpxy/common/net"
)

type ListenerControlFunc = func(string, string, syscall.RawConn) error

type DialUDPFunc = func(net.Address) (net.PacketConn, error)
