package net

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	a, err := ParseAddress(Network_UDP, "203.0.113.7:4443")
	require.NoError(t, err)
	require.True(t, a.IsIPv4Host())
	require.Equal(t, "203.0.113.7:4443", a.IPAddress())
	require.Equal(t, Port(4443), a.Port)

	a, err = ParseAddress(Network_UDP, "[2001:db8::17]:853")
	require.NoError(t, err)
	require.True(t, a.IsIPv6Host())
	require.Equal(t, "[2001:db8::17]:853", a.IPAddress())

	a, err = ParseAddress(Network_UDP, "example.com:53")
	require.NoError(t, err)
	require.True(t, a.IsDomainHost())
	require.Equal(t, "example.com:53", a.DomainAddress())

	_, err = ParseAddress(Network_UDP, "no-port")
	require.Error(t, err)
}

func TestAddressIsValid(t *testing.T) {
	require.False(t, Address{}.IsValid())

	a, err := ParseAddress(Network_UDP, "127.0.0.1:53")
	require.NoError(t, err)
	require.True(t, a.IsValid())
}

func TestByteToIPMapsV4InV6(t *testing.T) {
	mapped := []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff, 192, 0, 2, 1}

	ip := ByteToIP(mapped)
	require.Len(t, ip, IPv4len)
	require.Equal(t, "192.0.2.1", ip.String())
}

func TestAddressFromAddr(t *testing.T) {
	a := AddressFromAddr(&UDPAddr{
		IP:   ParseIP("127.0.0.1"),
		Port: 5353,
	})
	require.Equal(t, Network(Network_UDP), a.Network)
	require.Equal(t, Port(5353), a.Port)
	require.Equal(t, "127.0.0.1:5353", a.IPAddress())
}

func TestPortFromBytes(t *testing.T) {
	require.Equal(t, Port(0x1234), PortFromBytes([]byte{0x12, 0x34}))
}

func TestAddressEqual(t *testing.T) {
	a, err := ParseAddress(Network_UDP, "127.0.0.1:53")
	require.NoError(t, err)
	b, err := ParseAddress(Network_UDP, "127.0.0.1:53")
	require.NoError(t, err)
	c, err := ParseAddress(Network_UDP, "127.0.0.1:54")
	require.NoError(t, err)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}
