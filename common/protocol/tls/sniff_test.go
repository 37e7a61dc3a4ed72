package tls

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func u16(v int) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, uint16(v))
	return b
}

func buildClientHello(sni string) []byte {
	var exts []byte
	if sni != "" {
		name := []byte(sni)
		entry := append([]byte{0x00}, u16(len(name))...)
		entry = append(entry, name...)
		list := append(u16(len(entry)), entry...)
		exts = append(u16(0x0000), append(u16(len(list)), list...)...)
	}

	body := []byte{0x03, 0x03}
	body = append(body, make([]byte, 32)...)            // random
	body = append(body, 0x00)                           // legacy_session_id
	body = append(body, 0x00, 0x02, 0x13, 0x01)         // cipher_suites
	body = append(body, 0x01, 0x00)                     // compression
	body = append(body, u16(len(exts))...)
	body = append(body, exts...)

	msg := []byte{0x01, byte(len(body) >> 16), byte(len(body) >> 8), byte(len(body))}
	return append(msg, body...)
}

func TestReadClientHello(t *testing.T) {
	name, err := ReadClientHello(buildClientHello("www.example.com"))
	require.NoError(t, err)
	require.Equal(t, "www.example.com", name)
}

func TestReadClientHelloNoServerName(t *testing.T) {
	_, err := ReadClientHello(buildClientHello(""))
	require.Error(t, err)
}

func TestReadClientHelloTrailingDot(t *testing.T) {
	_, err := ReadClientHello(buildClientHello("example.com."))
	require.Error(t, err)
}

func TestReadClientHelloTruncated(t *testing.T) {
	hello := buildClientHello("www.example.com")

	for _, cut := range []int{5, 40, len(hello) - 1} {
		_, err := ReadClientHello(hello[:cut])
		require.Error(t, err, "cut at %d", cut)
	}
}

func TestReadClientHelloNotHandshake(t *testing.T) {
	data := buildClientHello("www.example.com")
	data[0] = 0x02 // ServerHello

	_, err := ReadClientHello(data)
	require.Error(t, err)
}
