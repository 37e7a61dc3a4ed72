//go:build !linux

package tproxy

import (
	"syscall"

	"github.com/simophin/cpxy/common/net"
)

var errNotSupported = newError("transparent udp is not supported on this platform")

func ListenPacket(_ net.Address) (net.PacketConn, error) {
	return nil, errNotSupported
}

func ListenPacketRecvOrigDst(_ net.Address) (net.PacketConn, error) {
	return nil, errNotSupported
}

func ListenPacketReply(_ net.Address) (net.PacketConn, error) {
	return nil, errNotSupported
}

func ReadMsgUDP(_ int, _ []byte) (int, net.Address, net.Address, error) {
	return 0, net.Address{}, net.Address{}, errNotSupported
}

func ReadMsgUDPConn(_ syscall.Conn, _ []byte) (int, net.Address, net.Address, error) {
	return 0, net.Address{}, net.Address{}, errNotSupported
}

func RetrieveOriginalDest(_ []byte) (net.Address, error) {
	return net.Address{}, errNotSupported
}
