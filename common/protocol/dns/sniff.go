package dns

import (
	"golang.org/x/net/dns/dnsmessage"

	"github.com/simophin/cpxy/common/buffer"
	"github.com/simophin/cpxy/common/net"
	"github.com/simophin/cpxy/common/protocol/sniffer"
)

var (
	errNotDNS = newError("not dns")
)

const (
	Port = net.Port(53)
)

type dnsSniffer struct {
}

func NewSniffer() sniffer.Sniffer {
	return &dnsSniffer{}
}

func (s *dnsSniffer) Protocol() sniffer.Protocol {
	return sniffer.DNS
}

// Sniff recovers the query name of a plain DNS message. Only datagrams
// whose target port is 53 are considered.
func (s *dnsSniffer) Sniff(b *buffer.Buffer, target net.Address) (sniffer.SniffResult, error) {
	if target.Port != Port {
		return sniffer.SniffResult{}, errNotDNS
	}

	var parser dnsmessage.Parser
	if _, err := parser.Start(b.Bytes()); err != nil {
		return sniffer.SniffResult{}, errNotDNS.WithError(err)
	}

	question, err := parser.Question()
	if err != nil {
		return sniffer.SniffResult{}, errNotDNS.WithError(err)
	}

	return sniffer.SniffResult{
		Protocol: s.Protocol(),
		Domain:   TrimFqdn(question.Name.String()),
	}, nil
}
