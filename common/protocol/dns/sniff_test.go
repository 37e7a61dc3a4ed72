package dns

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/dns/dnsmessage"

	"github.com/simophin/cpxy/common/buffer"
	"github.com/simophin/cpxy/common/net"
)

func buildQuery(t *testing.T, name string) []byte {
	t.Helper()

	msg := dnsmessage.Message{
		Header: dnsmessage.Header{
			ID:               1,
			RecursionDesired: true,
		},
		Questions: []dnsmessage.Question{
			{
				Name:  dnsmessage.MustNewName(name),
				Type:  dnsmessage.TypeA,
				Class: dnsmessage.ClassINET,
			},
		},
	}

	data, err := msg.Pack()
	require.NoError(t, err)

	return data
}

func target(port net.Port) net.Address {
	return net.Address{
		IP:      net.ParseIP("198.51.100.1"),
		Port:    port,
		Network: net.Network_UDP,
	}
}

func TestSniffQuery(t *testing.T) {
	b := buffer.FromBytes(buildQuery(t, "www.example.com."))

	result, err := NewSniffer().Sniff(b, target(53))
	require.NoError(t, err)
	require.Equal(t, "www.example.com", result.Domain)
	require.True(t, result.IsValid())
}

func TestSniffWrongPort(t *testing.T) {
	b := buffer.FromBytes(buildQuery(t, "www.example.com."))

	_, err := NewSniffer().Sniff(b, target(5353))
	require.Error(t, err)
}

func TestSniffNotDNS(t *testing.T) {
	b := buffer.FromBytes([]byte{0x00, 0x01, 0x02})

	_, err := NewSniffer().Sniff(b, target(53))
	require.Error(t, err)
}

func TestFqdn(t *testing.T) {
	require.Equal(t, "example.com", TrimFqdn("example.com."))
	require.Equal(t, "example.com.", GetFqdn("example.com"))
	require.Equal(t, "example.com.", GetFqdn("example.com."))
	require.True(t, IsFqdn("example.com."))
	require.False(t, IsFqdn("example.com"))
}
