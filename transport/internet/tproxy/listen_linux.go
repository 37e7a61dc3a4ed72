//go:build linux

package tproxy

import (
	"context"
	"syscall"

	"github.com/simophin/cpxy/common/net"
)

// ListenPacket binds a transparent UDP socket on address. The socket may
// bind to a foreign address (the spoofed reply path) and asks the kernel
// for the origin-destination record on every receive. Requires
// CAP_NET_ADMIN for IP_TRANSPARENT.
func ListenPacket(address net.Address) (net.PacketConn, error) {
	return listenPacket(address, true)
}

// ListenPacketRecvOrigDst only asks for the origin-destination record,
// without marking the socket transparent. It needs no privilege and
// serves REDIRECT-style deployments and tests.
func ListenPacketRecvOrigDst(address net.Address) (net.PacketConn, error) {
	return listenPacket(address, false)
}

// ListenPacketReply binds a transparent UDP socket to address, which may
// be foreign to this host. It serves the spoofed reply path: datagrams
// written through it carry address as their source. SO_REUSEADDR is set
// so concurrent hubs answering for the same destination can coexist.
func ListenPacketReply(address net.Address) (net.PacketConn, error) {
	lc := net.ListenConfig{
		Control: func(network, _ string, c syscall.RawConn) error {
			if err := transparentControl(network, c); err != nil {
				return err
			}
			return reuseAddrControl(c)
		},
	}

	return lc.ListenPacket(context.Background(), address.Network.This(), address.IPAddress())
}

func listenPacket(address net.Address, transparent bool) (net.PacketConn, error) {
	lc := net.ListenConfig{
		Control: func(network, _ string, c syscall.RawConn) error {
			if transparent {
				if err := transparentControl(network, c); err != nil {
					return err
				}
			}
			return origDstControl(network, c)
		},
	}

	return lc.ListenPacket(context.Background(), address.Network.This(), address.IPAddress())
}
