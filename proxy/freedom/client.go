package freedom

import (
	"github.com/simophin/cpxy/common/bytespool"
	"github.com/simophin/cpxy/common/net"
	udp_proto "github.com/simophin/cpxy/common/protocol/udp"
	"github.com/simophin/cpxy/common/session"
	"github.com/simophin/cpxy/common/task"
	"github.com/simophin/cpxy/proxy"
	"github.com/simophin/cpxy/transport/internet"
)

type client struct {
}

func NewClient() proxy.Client {
	return &client{}
}

func (c *client) Process(content session.Content, address net.Address, conn net.Conn, dialUDPFunc internet.DialUDPFunc) error {
	outbound, err := func() (net.Conn, error) {
		ib, _ := content.GetInbound()

		pc, err := dialUDPFunc(ib.Gateway)
		if err != nil {
			return nil, err
		}

		return &udp_proto.ConnSymmetric{
			PacketConn: &udp_proto.PacketConnSymmetric{
				PacketConn: pc,
				Address:    address,
			},
			Address: address,
		}, nil
	}()
	if err != nil {
		return newError("failed to dial %s", address.NetworkAndIPAddress()).WithError(err)
	}

	// DNS exchanges are one question, one answer. Tearing the session
	// down after the first reply frees the port instead of waiting out
	// the idle timer.
	oneshot := address.Port == 53

	requestDone := func() error {
		defer func() {
			_ = outbound.Close()
		}()

		buf := bytespool.Alloc(bytespool.Size)
		defer bytespool.Free(buf)

		for {
			n, err := conn.Read(buf)
			if err != nil {
				return err
			}

			if _, err := outbound.Write(buf[:n]); err != nil {
				return err
			}
		}
	}

	responseDone := func() error {
		defer func() {
			_ = conn.Close()
		}()

		buf := bytespool.Alloc(bytespool.Size)
		defer bytespool.Free(buf)

		for {
			n, err := outbound.Read(buf)
			if err != nil {
				return err
			}

			if _, err := conn.Write(buf[:n]); err != nil {
				return err
			}

			if oneshot {
				return nil
			}
		}
	}

	if errs := task.Parallel(requestDone, responseDone); len(errs) > 0 {
		return newError("connection ends").WithError(errs)
	}
	return nil
}

//go:generate go run github.com/simophin/cpxy/common/errors/errorgen
