package udp

import (
	"github.com/simophin/cpxy/common/buffer"
	"github.com/simophin/cpxy/common/net"
)

// Packet is a UDP packet together with its source and destination address.
type Packet struct {
	Payload        *buffer.Buffer
	Source, Target net.Address
}
