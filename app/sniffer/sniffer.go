package sniffer

import (
	"github.com/simophin/cpxy/common/buffer"
	"github.com/simophin/cpxy/common/net"
	"github.com/simophin/cpxy/common/protocol/dns"
	"github.com/simophin/cpxy/common/protocol/quic"
	"github.com/simophin/cpxy/common/protocol/sniffer"
)

var (
	errIsIP  = newError("is ip")
	errOnAll = newError("failed on all")
)

var (
	dataSniffers = map[net.Network][]sniffer.Sniffer{
		net.Network_UDP: {
			dns.NewSniffer(),
			quic.NewSniffer(),
		},
	}
)

// Sniff runs the first datagram of a session through the registered
// sniffers for its network. Best effort: a failure only means nothing
// was recognized.
func Sniff(b *buffer.Buffer, target net.Address) (sniffer.SniffResult, error) {
	for _, s := range dataSniffers[target.Network] {
		if result, err := s.Sniff(b, target); err == nil {
			if isDomainHost(result.Domain) {
				return result, nil
			}
			return sniffer.SniffResult{}, errIsIP
		}
	}

	return sniffer.SniffResult{}, errOnAll
}

// check if a sniffer returned an ip literal instead of a domain
func isDomainHost(host string) bool {
	a, err := net.ParseHost(host)
	if err != nil {
		return false
	}
	return a.IsDomainHost()
}

func RegisterSniffer(network net.Network, s sniffer.Sniffer) {
	dataSniffers[network] = append(dataSniffers[network], s)
}

//go:generate go run github.com/simophin/cpxy/common/errors/errorgen
