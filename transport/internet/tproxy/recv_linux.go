//go:build linux

package tproxy

import (
	"encoding/binary"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/simophin/cpxy/common/net"
)

// Scratch space for the ancillary chain: one maximal origin-destination
// record (an IPv6 sockaddr) plus its header.
var origDstSpace = unix.CmsgSpace(unix.SizeofSockaddrInet6)

// ReadMsgUDP performs exactly one non-blocking receive on fd. It returns
// the datagram length, the sender address and, when the kernel attached an
// origin-destination record, the address the sender originally dialed.
//
// dst is the zero Address when no such record is present; that is a valid
// outcome (the socket option is off, or no redirection occurred), not an
// error. A failure of the receive itself (unix.EAGAIN when no datagram is
// queued, unix.EINTR, anything else) is returned untouched, with no
// further processing.
func ReadMsgUDP(fd int, p []byte) (n int, src, dst net.Address, err error) {
	oob := make([]byte, origDstSpace)

	n, oobn, _, from, err := unix.Recvmsg(fd, p, oob, unix.MSG_DONTWAIT)
	if err != nil {
		return 0, net.Address{}, net.Address{}, err
	}

	src = addressFromSockaddr(from)

	if oobn > 0 {
		dst0, err0 := RetrieveOriginalDest(oob[:oobn])
		if err0 != nil {
			// A malformed record is rejected, never copied; the
			// receive itself still succeeded.
			newError("failed to retrieve original destination").WithError(err0).AtDebug().Logging()
		} else {
			dst = dst0
		}
	}

	return n, src, dst, nil
}

// ReadMsgUDPConn drives ReadMsgUDP through the runtime poller: the
// callback runs once the socket reports readable and re-arms itself on
// EAGAIN, so the calling goroutine parks instead of spinning.
func ReadMsgUDPConn(conn syscall.Conn, p []byte) (n int, src, dst net.Address, err error) {
	rawConn, err := conn.SyscallConn()
	if err != nil {
		return 0, net.Address{}, net.Address{}, err
	}

	readErr := rawConn.Read(func(fd uintptr) bool {
		n, src, dst, err = ReadMsgUDP(int(fd), p)
		return err != unix.EAGAIN
	})
	if readErr != nil && err == nil {
		err = readErr
	}

	return n, src, dst, err
}

// RetrieveOriginalDest walks the control messages attached to a receive
// and returns the original destination carried by the first record tagged
// (SOL_IP, IP_RECVORIGDSTADDR) or (SOL_IPV6, IPV6_RECVORIGDSTADDR). The
// first match is authoritative; the rest of the chain is ignored. The zero
// Address with a nil error means the chain holds no such record.
//
// Only the sockaddr payload of a matched record is read. The record's own
// length and address family are validated first: a record shorter than its
// declared sockaddr form, or tagged with the wrong family, is rejected
// rather than trusted.
func RetrieveOriginalDest(oob []byte) (net.Address, error) {
	msgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return net.Address{}, newError("failed to parse socket control message").WithError(err)
	}

	for _, msg := range msgs {
		switch {
		case msg.Header.Level == unix.SOL_IP && msg.Header.Type == unix.IP_RECVORIGDSTADDR:
			return origDstFromSockaddrInet4(msg.Data)
		case msg.Header.Level == unix.SOL_IPV6 && msg.Header.Type == unix.IPV6_RECVORIGDSTADDR:
			return origDstFromSockaddrInet6(msg.Data)
		}
	}

	return net.Address{}, nil
}

func origDstFromSockaddrInet4(data []byte) (net.Address, error) {
	if len(data) < unix.SizeofSockaddrInet4 {
		return net.Address{}, newError("short ipv4 origin-destination record: %d bytes", len(data))
	}
	if family := binary.NativeEndian.Uint16(data[0:2]); family != unix.AF_INET {
		return net.Address{}, newError("ipv4 origin-destination record with family %d", family)
	}

	return net.Address{
		IP:      net.ByteToIP(data[4:8]),
		Port:    net.PortFromBytes(data[2:4]),
		Network: net.Network_UDP,
	}, nil
}

func origDstFromSockaddrInet6(data []byte) (net.Address, error) {
	if len(data) < unix.SizeofSockaddrInet6 {
		return net.Address{}, newError("short ipv6 origin-destination record: %d bytes", len(data))
	}
	if family := binary.NativeEndian.Uint16(data[0:2]); family != unix.AF_INET6 {
		return net.Address{}, newError("ipv6 origin-destination record with family %d", family)
	}

	return net.Address{
		IP:      net.ByteToIP(data[8:24]),
		Port:    net.PortFromBytes(data[2:4]),
		Network: net.Network_UDP,
	}, nil
}

func addressFromSockaddr(sa unix.Sockaddr) net.Address {
	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		return net.Address{
			IP:      net.ByteToIP(sa.Addr[:]),
			Port:    net.Port(sa.Port),
			Network: net.Network_UDP,
		}
	case *unix.SockaddrInet6:
		return net.Address{
			IP:      net.ByteToIP(sa.Addr[:]),
			Port:    net.Port(sa.Port),
			Network: net.Network_UDP,
		}
	default:
		return net.Address{}
	}
}
