package loader

import (
	"github.com/simophin/cpxy/app/proxyman"
	"github.com/simophin/cpxy/app/proxyman/inbound"
	"github.com/simophin/cpxy/common/setting"
	"github.com/simophin/cpxy/proxy/freedom"
	"github.com/simophin/cpxy/proxy/redirect"
	"github.com/simophin/cpxy/transport/internet"
	"github.com/simophin/cpxy/transport/internet/udp"
)

func RegisterInboundHandler(handler proxyman.Inbound) {
	localInstance.InboundManager.Add(handler.Tag(), handler)
}

func NewInboundHandler(s setting.ListenSetting) (proxyman.Inbound, error) {
	var hubFunc internet.HubFunc
	switch s.Mode {
	case setting.ListenTProxy:
		hubFunc = udp.ListenTransparent
	case setting.ListenRedirect:
		hubFunc = udp.ListenRedirect
	case setting.ListenPlain:
		// A plain hub recovers no destination, so the forward address
		// is the only place its sessions can go.
		if !s.Forward.IsValid() {
			return nil, newError("listen mode plain requires a forward address")
		}
		hubFunc = udp.Listen
	default:
		return nil, newError("unknown listen mode %d", s.Mode)
	}

	return inbound.NewUDPInbound(inbound.UDPSetting{
		Tag:     s.Tag,
		Address: s.Address,
		Server:  redirect.NewServer(s.Address, s.Forward, s.Tag, s.Sniffing),
		Client:  freedom.NewClient(),
		HubFunc: hubFunc,
	})
}

//go:generate go run github.com/simophin/cpxy/common/errors/errorgen
