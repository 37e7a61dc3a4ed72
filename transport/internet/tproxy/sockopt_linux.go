//go:build linux

package tproxy

import (
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// origDstControl enables delivery of the origin-destination ancillary
// record for the socket's address family. Needs no special privilege.
func origDstControl(network string, c syscall.RawConn) error {
	return control(c, func(fd uintptr) error {
		if strings.HasSuffix(network, "6") {
			if err := unix.SetsockoptInt(int(fd), unix.SOL_IPV6, unix.IPV6_RECVORIGDSTADDR, 1); err != nil {
				return newError("failed to set IPV6_RECVORIGDSTADDR").WithError(err)
			}
			return nil
		}

		if err := unix.SetsockoptInt(int(fd), unix.SOL_IP, unix.IP_RECVORIGDSTADDR, 1); err != nil {
			return newError("failed to set IP_RECVORIGDSTADDR").WithError(err)
		}
		return nil
	})
}

// transparentControl marks the socket transparent so it can bind to and
// accept traffic for foreign addresses. Requires CAP_NET_ADMIN.
func transparentControl(network string, c syscall.RawConn) error {
	return control(c, func(fd uintptr) error {
		if strings.HasSuffix(network, "6") {
			if err := unix.SetsockoptInt(int(fd), unix.SOL_IPV6, unix.IPV6_TRANSPARENT, 1); err != nil {
				return newError("failed to set IPV6_TRANSPARENT").WithError(err)
			}
			return nil
		}

		if err := unix.SetsockoptInt(int(fd), unix.SOL_IP, unix.IP_TRANSPARENT, 1); err != nil {
			return newError("failed to set IP_TRANSPARENT").WithError(err)
		}
		return nil
	})
}

func reuseAddrControl(c syscall.RawConn) error {
	return control(c, func(fd uintptr) error {
		if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
			return newError("failed to set SO_REUSEADDR").WithError(err)
		}
		return nil
	})
}

func control(c syscall.RawConn, fn func(fd uintptr) error) error {
	var innerErr error

	if err := c.Control(func(fd uintptr) {
		innerErr = fn(fd)
	}); err != nil {
		return err
	}

	return innerErr
}
