package conf

import (
	"time"

	"github.com/simophin/cpxy/common/log"
	"github.com/simophin/cpxy/common/net"
	"github.com/simophin/cpxy/common/setting"
	"github.com/simophin/cpxy/common/setting/loader"
	"github.com/simophin/cpxy/transport/internet/udp"
)

func Loads(path string) error {
	conf, err := unmarshal(path)
	if err != nil {
		return err
	}

	conf.LoadLog()

	if conf.Timeout > 0 {
		udp.PipeOption.Timeout = time.Duration(conf.Timeout) * time.Second
	}

	return conf.LoadInbound()
}

func (c config) LoadLog() {
	if c.Log.Level == "" {
		return
	}

	log.RegisterAlternativeLogger(log.NewSimpleLogger(log.ParseLevel(c.Log.Level), log.NewPrefix("cpxy")))
}

func (c config) LoadInbound() error {
	for _, v := range c.Inbounds {
		address, err := net.ParseAddress(net.Network_UDP, v.Listen)
		if err != nil {
			return newError("bad listen address %s", v.Listen).WithError(err)
		}

		mode, err := parseListenMode(v.Mode)
		if err != nil {
			return err
		}

		var forward net.Address
		if v.Forward != "" {
			forward, err = net.ParseAddress(net.Network_UDP, v.Forward)
			if err != nil {
				return newError("bad forward address %s", v.Forward).WithError(err)
			}
		}

		handler, err := loader.NewInboundHandler(setting.ListenSetting{
			Tag:      v.Tag,
			Address:  address,
			Mode:     mode,
			Forward:  forward,
			Sniffing: v.Sniffing,
		})
		if err != nil {
			return err
		}

		loader.RegisterInboundHandler(handler)
	}

	return nil
}

func parseListenMode(s string) (setting.ListenMode, error) {
	switch s {
	case "", "tproxy":
		return setting.ListenTProxy, nil
	case "redirect":
		return setting.ListenRedirect, nil
	case "plain":
		return setting.ListenPlain, nil
	default:
		return 0, newError("unknown listen mode %s", s)
	}
}

//go:generate go run github.com/simophin/cpxy/common/errors/errorgen
