package redirect

import (
	"github.com/simophin/cpxy/app/sniffer"
	"github.com/simophin/cpxy/common/buffer"
	"github.com/simophin/cpxy/common/net"
	udp_proto "github.com/simophin/cpxy/common/protocol/udp"
	"github.com/simophin/cpxy/common/session"
	"github.com/simophin/cpxy/proxy"
	"github.com/simophin/cpxy/transport/internet"
	"github.com/simophin/cpxy/transport/internet/udp"
)

type server struct {
	gateway  net.Address
	forward  net.Address
	tag      string
	sniffing bool
}

// NewServer builds the inbound handler. Sessions relay to their original
// destination; sessions without one, coming off a plain hub, relay to
// forward instead.
func NewServer(gateway, forward net.Address, tag string, sniffing bool) proxy.Server {
	return &server{
		gateway:  gateway,
		forward:  forward,
		tag:      tag,
		sniffing: sniffing,
	}
}

func (s *server) Process(content session.Content, conn net.Conn, client proxy.Client) error {
	hubConn, ok := conn.(udp.Conn)
	if !ok {
		return newError("unexpected inbound connection type")
	}

	target := hubConn.Target()
	if !target.IsValid() {
		target = s.forward
	}
	if !target.IsValid() {
		return newError("inbound from %s carries no original destination", hubConn.Source().NetworkAndIPAddress())
	}

	content.SetID(session.NewID())
	content.SetInbound(session.Inbound{
		Source:   hubConn.Source(),
		Gateway:  s.gateway,
		Original: target,
		Tag:      s.tag,
	})

	if s.sniffing {
		conn = s.sniff(content, hubConn, target)
	}

	newError("session %s -> %s", hubConn.Source().NetworkAndIPAddress(), target.NetworkAndIPAddress()).AtInfo().Logging()

	return client.Process(content, target, conn, internet.DialUDPSystem)
}

// sniff inspects the session's first datagram without consuming it. The
// recognized protocol and domain are recorded as session metadata only;
// the relay target stays the original destination.
func (s *server) sniff(content session.Content, conn udp.Conn, target net.Address) net.Conn {
	pkt, err := conn.ReadPacket()
	if err != nil {
		return conn
	}

	if result, err := sniffer.Sniff(pkt.Payload, target); err == nil {
		content.SetSniffed(session.Sniffed{
			Protocol: result.Protocol.String(),
			Domain:   result.Domain,
		})
		newError("sniffed %s domain %s from %s", result.Protocol, result.Domain, conn.Source().NetworkAndIPAddress()).AtDebug().Logging()
	}

	return &sniffedConn{
		Conn:  conn,
		first: pkt.Payload,
	}
}

// sniffedConn replays the datagram taken for sniffing before handing
// reads back to the session.
type sniffedConn struct {
	udp.Conn

	first *buffer.Buffer
}

func (c *sniffedConn) Read(p []byte) (int, error) {
	if c.first != nil {
		defer func() {
			c.first.Release()
			c.first = nil
		}()
		return c.first.Read(p)
	}

	return c.Conn.Read(p)
}

func (c *sniffedConn) ReadPacket() (udp_proto.Packet, error) {
	if c.first != nil {
		pkt := udp_proto.Packet{
			Payload: c.first,
			Source:  c.Source(),
			Target:  c.Target(),
		}
		c.first = nil
		return pkt, nil
	}

	return c.Conn.ReadPacket()
}

//go:generate go run github.com/simophin/cpxy/common/errors/errorgen
