package internet

import (
	"github.com/simophin/cpxy/common/net"
)

type HubFunc = func(net.Address) (Hub, error)

type Hub interface {
	Receive() <-chan net.Conn
	Close() error
}
