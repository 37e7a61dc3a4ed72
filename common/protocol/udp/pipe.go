package udp

import (
	"sync"

	"github.com/simophin/cpxy/common/io"
	"github.com/simophin/cpxy/common/signal"
)

var (
	errSlowDown = newError("pipe slow down")
)

type PipeReadWriteCloser interface {
	PipeReader
	PipeWriteCloser
}

type PipeWriteCloser interface {
	WritePacket(Packet) error

	io.Closer
}

type PipeReader interface {
	ReadPacket() (Packet, error)

	io.Reader
}

// pipe queues packets from the hub receive loop to a session reader.
// WritePacket never blocks on a slow reader.
type pipe struct {
	sync.Mutex

	data       []Packet
	readSignal signal.Notifier
	done       signal.Done
}

func NewPipe() PipeReadWriteCloser {
	return &pipe{
		readSignal: signal.NewNotifier(),
		done:       signal.NewDone(),
	}
}

func (p *pipe) WritePacket(p2 Packet) error {
	p.Lock()
	defer p.Unlock()

	if p.done.Done() {
		return io.ErrClosedPipe
	}

	p.data = append(p.data, p2)

	p.readSignal.Signal()
	return nil
}

func (p *pipe) Read(p2 []byte) (int, error) {
	pkt, err := p.ReadPacket()
	if err != nil {
		return 0, err
	}
	defer pkt.Payload.Release()

	return pkt.Payload.Read(p2)
}

func (p *pipe) ReadPacket() (Packet, error) {
	read := func() (Packet, error) {
		p.Lock()
		defer p.Unlock()

		if len(p.data) == 0 {
			if p.done.Done() {
				return Packet{}, io.EOF
			}
			return Packet{}, errSlowDown
		}

		pkt := p.data[0]
		p.data[0] = Packet{}
		p.data = p.data[1:]

		return pkt, nil
	}

	for {
		if pkt, err := read(); err != errSlowDown {
			return pkt, err
		}

		select {
		case <-p.readSignal.Wait():
		case <-p.done.Wait():
		}
	}
}

func (p *pipe) Close() error {
	p.Lock()
	defer p.Unlock()

	if p.done.Done() {
		return nil
	}

	for _, pkt := range p.data {
		pkt.Payload.Release()
	}
	p.data = nil

	return p.done.Close()
}
