package internet

import (
	"github.com/simophin/cpxy/common/net"
)

// DialUDPSystem binds an ephemeral UDP socket near the given source address.
func DialUDPSystem(src net.Address) (net.PacketConn, error) {
	src.Port = net.Port(0)

	return ListenPacketSystem(src)
}
