package setting

import (
	"github.com/simophin/cpxy/common/net"
)

type ListenSetting struct {
	Tag      string
	Address  net.Address
	Mode     ListenMode
	Forward  net.Address
	Sniffing bool
}
