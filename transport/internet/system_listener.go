package internet

import (
	"github.com/simophin/cpxy/common/net"
)

// ListenPacketSystem listens on a local address for incoming UDP datagrams.
func ListenPacketSystem(address net.Address) (net.PacketConn, error) {
	return net.LocalListenPacketFunc(address)
}
