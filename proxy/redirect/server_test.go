package redirect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/dns/dnsmessage"

	"github.com/simophin/cpxy/common/buffer"
	"github.com/simophin/cpxy/common/net"
	udp_proto "github.com/simophin/cpxy/common/protocol/udp"
	"github.com/simophin/cpxy/common/session"
	"github.com/simophin/cpxy/transport/internet"
)

type fakeConn struct {
	pending udp_proto.PipeReadWriteCloser

	src, dst net.Address
}

func newFakeConn(src, dst net.Address) *fakeConn {
	return &fakeConn{
		pending: udp_proto.NewPipe(),
		src:     src,
		dst:     dst,
	}
}

func (c *fakeConn) queue(payload []byte) error {
	b := buffer.New()
	if _, err := b.Write(payload); err != nil {
		return err
	}

	return c.pending.WritePacket(udp_proto.Packet{
		Payload: b,
		Source:  c.src,
		Target:  c.dst,
	})
}

func (c *fakeConn) Source() net.Address { return c.src }
func (c *fakeConn) Target() net.Address { return c.dst }

func (c *fakeConn) Read(p []byte) (int, error) {
	return c.pending.Read(p)
}

func (c *fakeConn) ReadPacket() (udp_proto.Packet, error) {
	return c.pending.ReadPacket()
}

func (c *fakeConn) Write(p []byte) (int, error) {
	return len(p), nil
}

func (c *fakeConn) Close() error {
	return c.pending.Close()
}

func (c *fakeConn) LocalAddr() net.Addr  { return c.dst.AddrWithIPAddress() }
func (c *fakeConn) RemoteAddr() net.Addr { return c.src.AddrWithIPAddress() }

func (c *fakeConn) SetDeadline(time.Time) error      { return nil }
func (c *fakeConn) SetReadDeadline(time.Time) error  { return nil }
func (c *fakeConn) SetWriteDeadline(time.Time) error { return nil }

type recordingClient struct {
	content session.Content
	target  net.Address
	first   []byte
	err     error
}

func (c *recordingClient) Process(content session.Content, target net.Address, conn net.Conn, _ internet.DialUDPFunc) error {
	c.content = content
	c.target = target

	buf := make([]byte, 2048)
	n, err := conn.Read(buf)
	c.err = err
	if err == nil {
		c.first = append([]byte(nil), buf[:n]...)
	}

	return nil
}

func mustParse(t *testing.T, s string) net.Address {
	t.Helper()

	a, err := net.ParseAddress(net.Network_UDP, s)
	require.NoError(t, err)
	return a
}

func dnsQuery(t *testing.T, name string) []byte {
	t.Helper()

	msg := dnsmessage.Message{
		Header: dnsmessage.Header{ID: 7},
		Questions: []dnsmessage.Question{
			{
				Name:  dnsmessage.MustNewName(name),
				Type:  dnsmessage.TypeA,
				Class: dnsmessage.ClassINET,
			},
		},
	}

	data, err := msg.Pack()
	require.NoError(t, err)
	return data
}

func TestProcessSetsInbound(t *testing.T) {
	src := mustParse(t, "192.0.2.10:5000")
	dst := mustParse(t, "198.51.100.1:4443")
	gateway := mustParse(t, "127.0.0.1:3000")

	conn := newFakeConn(src, dst)
	defer conn.Close()
	require.NoError(t, conn.queue([]byte("payload")))

	content := session.NewContent()
	defer content.Close()

	client := &recordingClient{}
	err := NewServer(gateway, net.Address{}, "tproxy-in", false).Process(content, conn, client)
	require.NoError(t, err)

	ib, ok := content.GetInbound()
	require.True(t, ok)
	require.Equal(t, src, ib.Source)
	require.Equal(t, dst, ib.Original)
	require.Equal(t, gateway, ib.Gateway)
	require.Equal(t, "tproxy-in", ib.Tag)

	id, ok := content.GetID()
	require.True(t, ok)
	require.NotZero(t, id)

	require.Equal(t, dst, client.target)
	require.Equal(t, []byte("payload"), client.first)
}

func TestProcessRejectsMissingOriginalDest(t *testing.T) {
	src := mustParse(t, "192.0.2.10:5000")

	conn := newFakeConn(src, net.Address{})
	defer conn.Close()

	content := session.NewContent()
	defer content.Close()

	err := NewServer(mustParse(t, "127.0.0.1:3000"), net.Address{}, "tproxy-in", false).Process(content, conn, &recordingClient{})
	require.Error(t, err)
}

func TestProcessForwardsWithoutOriginalDest(t *testing.T) {
	src := mustParse(t, "192.0.2.10:5000")
	forward := mustParse(t, "198.51.100.1:53")

	// A plain hub session has no target; the configured forward address
	// takes its place.
	conn := newFakeConn(src, net.Address{})
	defer conn.Close()
	require.NoError(t, conn.queue([]byte("payload")))

	content := session.NewContent()
	defer content.Close()

	client := &recordingClient{}
	err := NewServer(mustParse(t, "127.0.0.1:3000"), forward, "plain-in", false).Process(content, conn, client)
	require.NoError(t, err)

	require.Equal(t, forward, client.target)
	require.Equal(t, []byte("payload"), client.first)

	ib, ok := content.GetInbound()
	require.True(t, ok)
	require.Equal(t, forward, ib.Original)
}

func TestProcessSniffsFirstDatagram(t *testing.T) {
	src := mustParse(t, "192.0.2.10:5000")
	dst := mustParse(t, "198.51.100.1:53")

	conn := newFakeConn(src, dst)
	defer conn.Close()

	query := dnsQuery(t, "www.example.com.")
	require.NoError(t, conn.queue(query))

	content := session.NewContent()
	defer content.Close()

	client := &recordingClient{}
	err := NewServer(mustParse(t, "127.0.0.1:3000"), net.Address{}, "tproxy-in", true).Process(content, conn, client)
	require.NoError(t, err)

	sniffed, ok := content.GetSniffed()
	require.True(t, ok)
	require.Equal(t, "dns", sniffed.Protocol)
	require.Equal(t, "www.example.com", sniffed.Domain)

	// The sniffed datagram is replayed to the outbound, not consumed.
	require.Equal(t, query, client.first)

	// The relay target is still the original destination.
	require.Equal(t, dst, client.target)
}

func TestProcessSniffMissKeepsSession(t *testing.T) {
	src := mustParse(t, "192.0.2.10:5000")
	dst := mustParse(t, "198.51.100.1:4443")

	conn := newFakeConn(src, dst)
	defer conn.Close()

	payload := []byte{0xde, 0xad, 0xbe, 0xef}
	require.NoError(t, conn.queue(payload))

	content := session.NewContent()
	defer content.Close()

	client := &recordingClient{}
	err := NewServer(mustParse(t, "127.0.0.1:3000"), net.Address{}, "tproxy-in", true).Process(content, conn, client)
	require.NoError(t, err)

	_, ok := content.GetSniffed()
	require.False(t, ok)
	require.NoError(t, client.err)
	require.Equal(t, payload, client.first)
}
