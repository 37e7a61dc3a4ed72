package inbound

import (
	"github.com/simophin/cpxy/app/proxyman"
	"github.com/simophin/cpxy/common/net"
	"github.com/simophin/cpxy/common/session"
	"github.com/simophin/cpxy/common/signal"
	"github.com/simophin/cpxy/proxy"
	"github.com/simophin/cpxy/transport/internet"
)

type UDPSetting struct {
	Tag     string
	Address net.Address
	Server  proxy.Server
	Client  proxy.Client
	HubFunc internet.HubFunc
}

type udpInbound struct {
	tag     string
	address net.Address
	server  proxy.Server
	client  proxy.Client
	hub     internet.Hub
	done    signal.Done
}

func NewUDPInbound(setting UDPSetting) (proxyman.Inbound, error) {
	hub, err := setting.HubFunc(setting.Address)
	if err != nil {
		return nil, err
	}

	h := &udpInbound{
		tag:     setting.Tag,
		address: setting.Address,
		server:  setting.Server,
		client:  setting.Client,
		hub:     hub,
		done:    signal.NewDone(),
	}

	go h.handle()

	newError("listening on %s", h.address.NetworkAndIPAddress()).AtInfo().Logging()

	return h, nil
}

func (h *udpInbound) Close() error {
	_ = h.done.Close()

	return h.hub.Close()
}

func (h *udpInbound) Tag() string {
	return h.tag
}

func (h *udpInbound) handle() {
	for {
		select {
		case conn := <-h.hub.Receive():
			go func() {
				if err := h.callback(conn); err != nil {
					newError("failed to handle udp conn").WithError(err).AtDebug().Logging()
				}
			}()
		case <-h.done.Wait():
			return
		}
	}
}

func (h *udpInbound) callback(conn net.Conn) error {
	defer func() {
		_ = conn.Close()
		newError("connection closed %s", conn.RemoteAddr().String()).AtDebug().Logging()
	}()

	content := session.NewContent()
	defer func() {
		_ = content.Close()
	}()

	return h.server.Process(content, conn, h.client)
}

//go:generate go run github.com/simophin/cpxy/common/errors/errorgen
