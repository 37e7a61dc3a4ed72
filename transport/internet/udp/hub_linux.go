//go:build linux

package udp

import (
	"sync"
	"syscall"
	"time"

	"github.com/simophin/cpxy/common/cache"
	"github.com/simophin/cpxy/common/io"
	"github.com/simophin/cpxy/common/net"
	"github.com/simophin/cpxy/common/signal"
	"github.com/simophin/cpxy/transport/internet"
	"github.com/simophin/cpxy/transport/internet/tproxy"
)

// ListenTransparent opens a transparent UDP hub on address. Every session
// carries the destination its source originally dialed, and replies are
// sent from a socket bound to that destination so the source sees the
// answer coming from where it sent the question. Requires CAP_NET_ADMIN.
func ListenTransparent(address net.Address) (internet.Hub, error) {
	conn, err := tproxy.ListenPacket(address)
	if err != nil {
		return nil, err
	}

	sysConn, ok := conn.(syscall.Conn)
	if !ok {
		_ = conn.Close()
		return nil, newError("listener does not expose its descriptor")
	}

	senders := cache.NewPool()

	read := func(p []byte) (int, net.Address, net.Address, error) {
		return tproxy.ReadMsgUDPConn(sysConn, p)
	}

	reply := func(p []byte, src, origDst net.Address) (int, error) {
		sender, err := senderFor(senders, origDst)
		if err != nil {
			newError("failed to bind reply sender, answering from hub socket").WithError(err).AtDebug().Logging()
			return conn.WriteTo(p, src.AddrWithIPAddress())
		}
		return sender.WriteTo(p, src.AddrWithIPAddress())
	}

	closer := func() error {
		var conns []*transparentSender
		senders.Range(func(_, v interface{}) bool {
			conns = append(conns, v.(*transparentSender))
			return true
		})
		for _, conn := range conns {
			_ = conn.Close()
		}
		return senders.Close()
	}

	return newHub(address, conn, read, reply, closer), nil
}

// ListenRedirect opens a UDP hub that recovers original destinations
// without marking the socket transparent. Replies leave from the hub
// socket itself, so the source sees them coming from the proxy. Needs no
// privilege; pairs with REDIRECT-style rules.
func ListenRedirect(address net.Address) (internet.Hub, error) {
	conn, err := tproxy.ListenPacketRecvOrigDst(address)
	if err != nil {
		return nil, err
	}

	sysConn, ok := conn.(syscall.Conn)
	if !ok {
		_ = conn.Close()
		return nil, newError("listener does not expose its descriptor")
	}

	read := func(p []byte) (int, net.Address, net.Address, error) {
		return tproxy.ReadMsgUDPConn(sysConn, p)
	}

	reply := func(p []byte, src, _ net.Address) (int, error) {
		return conn.WriteTo(p, src.AddrWithIPAddress())
	}

	return newHub(address, conn, read, reply, nil), nil
}

// transparentSender is a reply socket bound to one original destination,
// shared by every session answering from it. It closes itself once no
// reply has left it for PipeOption.Timeout.
type transparentSender struct {
	conn net.PacketConn

	activity  signal.Notifier
	done      signal.Done
	closer    io.CloseFunc
	closeOnce sync.Once
}

func newTransparentSender(conn net.PacketConn, closeFunc io.CloseFunc) *transparentSender {
	s := &transparentSender{
		conn:     conn,
		activity: signal.NewNotifier(),
		done:     signal.NewDone(),
		closer:   closeFunc,
	}

	go s.keepCloser()

	return s
}

func (s *transparentSender) WriteTo(p []byte, addr net.Addr) (int, error) {
	s.activity.Signal()

	return s.conn.WriteTo(p, addr)
}

func (s *transparentSender) keepCloser() {
	timer := time.NewTimer(PipeOption.Timeout)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			_ = s.Close()
			return
		case <-s.done.Wait():
			return
		case <-s.activity.Wait():
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(PipeOption.Timeout)
		}
	}
}

func (s *transparentSender) Close() error {
	s.closeOnce.Do(func() {
		_ = s.done.Close()

		_ = s.closer()

		_ = s.conn.Close()
	})

	return nil
}

// senderFor returns the transparent socket bound to origDst, creating and
// caching one on first use. Using a cached sender defers its idle timer.
func senderFor(senders cache.Pool, origDst net.Address) (*transparentSender, error) {
	key := origDst.NetworkAndIPAddress()

	if sender, ok := senders.Get(key); ok {
		s := sender.(*transparentSender)
		s.activity.Signal()
		return s, nil
	}

	conn, err := tproxy.ListenPacketReply(origDst)
	if err != nil {
		return nil, newError("failed to bind reply sender for %s", key).WithError(err)
	}

	s := newTransparentSender(conn, func() error {
		senders.Delete(key)
		return nil
	})
	senders.Set(key, s)

	return s, nil
}
