package udp

import (
	"github.com/simophin/cpxy/common/bytespool"
	"github.com/simophin/cpxy/common/net"
)

// ConnSymmetric narrows a PacketConn to a single remote address.
type ConnSymmetric struct {
	net.PacketConn

	Address net.Address
}

func (c *ConnSymmetric) Write(p []byte) (int, error) {
	return c.WriteTo(p, c.RemoteAddr())
}

func (c *ConnSymmetric) Read(p []byte) (int, error) {
	n, _, err := c.ReadFrom(p)
	return n, err
}

func (c *ConnSymmetric) RemoteAddr() net.Addr {
	return c.Address.AddrWithIPAddress()
}

// PacketConnSymmetric drops datagrams arriving from any other peer.
type PacketConnSymmetric struct {
	net.PacketConn

	Address net.Address
}

func (c *PacketConnSymmetric) ReadFrom(p []byte) (int, net.Addr, error) {
	buf := bytespool.Alloc(bytespool.Size)
	defer bytespool.Free(buf)

	for {
		n, addr, err := c.PacketConn.ReadFrom(buf)
		if err != nil {
			return 0, addr, err
		}

		if addr == nil || !net.AddressFromAddr(addr).Equal(c.Address) {
			newError("dropped datagram from unexpected peer %v", addr).AtDebug().Logging()
			continue
		}

		return copy(p, buf[:n]), addr, nil
	}
}
