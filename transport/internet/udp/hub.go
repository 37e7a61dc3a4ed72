package udp

import (
	"sync"
	"time"

	"github.com/simophin/cpxy/common/buffer"
	"github.com/simophin/cpxy/common/cache"
	"github.com/simophin/cpxy/common/io"
	"github.com/simophin/cpxy/common/net"
	udp_proto "github.com/simophin/cpxy/common/protocol/udp"
	"github.com/simophin/cpxy/common/signal"
	"github.com/simophin/cpxy/transport/internet"
)

var (
	PipeOption = struct {
		Timeout time.Duration
	}{
		Timeout: 60 * time.Second,
	}
)

// Conn is one hub session: a net.Conn carrying the session's source and,
// for transparent hubs, the original destination the source dialed.
type Conn interface {
	net.Conn

	ReadPacket() (udp_proto.Packet, error)

	Source() net.Address
	Target() net.Address
}

// readFunc performs one receive: payload length, sender, original
// destination (zero Address when unknown).
type readFunc = func(p []byte) (int, net.Address, net.Address, error)

// replyFunc sends a reply to src on behalf of origDst.
type replyFunc = func(p []byte, src, origDst net.Address) (int, error)

type sessionKey struct {
	src, dst string
}

type hub struct {
	address net.Address
	conn    net.PacketConn
	ch      chan net.Conn
	pool    cache.Pool
	read    readFunc
	reply   replyFunc
	done    signal.Done
	closer  io.CloseFunc
}

func newHub(address net.Address, conn net.PacketConn, read readFunc, reply replyFunc, closer io.CloseFunc) *hub {
	// The given address may carry port 0; the socket knows where it
	// actually landed.
	if bound := net.AddressFromAddr(conn.LocalAddr()); bound.IsValid() {
		address = bound
	}

	h := &hub{
		address: address,
		conn:    conn,
		ch:      make(chan net.Conn),
		pool:    cache.NewPool(),
		read:    read,
		reply:   reply,
		done:    signal.NewDone(),
		closer:  closer,
	}

	go h.handle()

	return h
}

func (h *hub) Receive() <-chan net.Conn {
	return h.ch
}

func (h *hub) Close() error {
	_ = h.done.Close()

	var conns []*udpConn
	h.pool.Range(func(_, v interface{}) bool {
		conns = append(conns, v.(*udpConn))
		return true
	})
	for _, conn := range conns {
		_ = conn.Close()
	}
	_ = h.pool.Close()

	if h.closer != nil {
		_ = h.closer()
	}

	return h.conn.Close()
}

func (h *hub) handle() {
	receive := func() (udp_proto.Packet, error) {
		b := buffer.New()
		rb := b.Extend(buffer.Size)

		n, src, dst, err := h.read(rb)
		if err != nil {
			b.Release()
			return udp_proto.Packet{}, err
		}
		b.Resize(0, n)

		return udp_proto.Packet{
			Payload: b,
			Source:  src,
			Target:  dst,
		}, nil
	}

	write := func(pkt udp_proto.Packet) error {
		key := sessionKey{
			src: pkt.Source.IPAddress(),
		}
		if pkt.Target.IsValid() {
			key.dst = pkt.Target.NetworkAndIPAddress()
		}

		var conn *udpConn
		if conn0, ok := h.pool.Get(key); ok {
			conn = conn0.(*udpConn)
		} else {
			conn = newUDPConn(func(p []byte) (int, error) {
				return h.reply(p, pkt.Source, pkt.Target)
			}, func() error {
				h.pool.Delete(key)
				return nil
			}, h.address, pkt.Source, pkt.Target)

			h.pool.Set(key, conn)

			select {
			case h.ch <- conn:
			case <-h.done.Wait():
				_ = conn.Close()
				return io.ErrClosedPipe
			}
		}

		return conn.callback(pkt)
	}

	for {
		pkt, err := receive()
		if err != nil {
			if h.done.Done() {
				break
			}
			newError("failed to read UDP conn").WithError(err).AtDebug().Logging()
			continue
		}

		if err := write(pkt); err != nil {
			pkt.Payload.Release()
			newError("failed to dispatch packet").WithError(err).AtDebug().Logging()
		}
	}
}

// Listen opens a plain UDP hub on address. Sessions carry no original
// destination and replies come from the hub socket itself.
func Listen(address net.Address) (internet.Hub, error) {
	conn, err := internet.ListenPacketSystem(address)
	if err != nil {
		return nil, err
	}

	read := func(p []byte) (int, net.Address, net.Address, error) {
		n, addr, err := conn.ReadFrom(p)
		if err != nil {
			return 0, net.Address{}, net.Address{}, err
		}
		return n, net.AddressFromAddr(addr), net.Address{}, nil
	}

	reply := func(p []byte, src, _ net.Address) (int, error) {
		return conn.WriteTo(p, src.AddrWithIPAddress())
	}

	return newHub(address, conn, read, reply, nil), nil
}

type udpConn struct {
	localAddr, remoteAddr net.Addr

	source, target net.Address

	output    io.WriteFunc
	closer    io.CloseFunc
	pending   udp_proto.PipeReadWriteCloser
	activity  signal.Notifier
	done      signal.Done
	closeOnce sync.Once
}

func newUDPConn(writeFunc io.WriteFunc, closeFunc io.CloseFunc, lis, src, dst net.Address) *udpConn {
	conn := &udpConn{
		localAddr: &net.UDPAddr{
			IP:   lis.IP,
			Port: int(lis.Port),
		},
		remoteAddr: &net.UDPAddr{
			IP:   src.IP,
			Port: int(src.Port),
		},
		source:   src,
		target:   dst,
		output:   writeFunc,
		closer:   closeFunc,
		pending:  udp_proto.NewPipe(),
		activity: signal.NewNotifier(),
		done:     signal.NewDone(),
	}

	go conn.keepCloser()

	return conn
}

func (c *udpConn) Source() net.Address {
	return c.source
}

func (c *udpConn) Target() net.Address {
	return c.target
}

func (c *udpConn) Write(p []byte) (int, error) {
	return c.output(p)
}

func (c *udpConn) callback(pkt udp_proto.Packet) error {
	defer c.activity.Signal()

	return c.pending.WritePacket(pkt)
}

// keepCloser tears the session down once no datagram has arrived for
// PipeOption.Timeout.
func (c *udpConn) keepCloser() {
	timer := time.NewTimer(PipeOption.Timeout)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			_ = c.Close()
			return
		case <-c.done.Wait():
			return
		case <-c.activity.Wait():
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(PipeOption.Timeout)
		}
	}
}

func (c *udpConn) Read(p []byte) (int, error) {
	n, _, err := c.ReadFrom(p)
	return n, err
}

func (c *udpConn) ReadFrom(p []byte) (int, net.Addr, error) {
	n, err := c.pending.Read(p)
	return n, c.remoteAddr, err
}

func (c *udpConn) ReadPacket() (udp_proto.Packet, error) {
	return c.pending.ReadPacket()
}

func (c *udpConn) Close() error {
	c.closeOnce.Do(func() {
		_ = c.pending.Close()

		_ = c.done.Close()

		_ = c.closer()
	})

	return nil
}

func (c *udpConn) LocalAddr() net.Addr {
	return c.localAddr
}

func (c *udpConn) RemoteAddr() net.Addr {
	return c.remoteAddr
}

func (c *udpConn) SetDeadline(_ time.Time) error {
	return nil
}

func (c *udpConn) SetReadDeadline(_ time.Time) error {
	return nil
}

func (c *udpConn) SetWriteDeadline(_ time.Time) error {
	return nil
}

//go:generate go run github.com/simophin/cpxy/common/errors/errorgen
