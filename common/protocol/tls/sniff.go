package tls

import (
	"encoding/binary"
	"strings"
)

var (
	errNotClientHello = newError("not client hello")
	errNoServerName   = newError("no server name")
)

const (
	handshakeTypeClientHello = 0x01
	extensionServerName      = 0x0000
	serverNameTypeHostName   = 0x00
)

// ReadClientHello extracts the server name indication from a raw TLS
// handshake message, as carried by a TCP stream or reassembled from QUIC
// CRYPTO frames. Every length field is validated before it is followed.
func ReadClientHello(data []byte) (string, error) {
	if len(data) < 42 || data[0] != handshakeTypeClientHello {
		return "", errNotClientHello
	}

	msgLen := int(data[1])<<16 | int(data[2])<<8 | int(data[3])
	if 4+msgLen > len(data) {
		return "", errNotClientHello
	}
	data = data[4 : 4+msgLen]

	// legacy_version(2) + random(32)
	if len(data) < 34 {
		return "", errNotClientHello
	}
	data = data[34:]

	// legacy_session_id
	if len(data) < 1 {
		return "", errNotClientHello
	}
	idLen := int(data[0])
	if len(data) < 1+idLen {
		return "", errNotClientHello
	}
	data = data[1+idLen:]

	// cipher_suites
	if len(data) < 2 {
		return "", errNotClientHello
	}
	csLen := int(binary.BigEndian.Uint16(data))
	if len(data) < 2+csLen {
		return "", errNotClientHello
	}
	data = data[2+csLen:]

	// legacy_compression_methods
	if len(data) < 1 {
		return "", errNotClientHello
	}
	cmLen := int(data[0])
	if len(data) < 1+cmLen {
		return "", errNotClientHello
	}
	data = data[1+cmLen:]

	// extensions
	if len(data) < 2 {
		return "", errNotClientHello
	}
	extsLen := int(binary.BigEndian.Uint16(data))
	data = data[2:]
	if len(data) < extsLen {
		return "", errNotClientHello
	}
	data = data[:extsLen]

	for len(data) >= 4 {
		extType := binary.BigEndian.Uint16(data)
		extLen := int(binary.BigEndian.Uint16(data[2:]))
		data = data[4:]
		if len(data) < extLen {
			return "", errNotClientHello
		}

		if uint16(extensionServerName) == extType {
			return readServerName(data[:extLen])
		}

		data = data[extLen:]
	}

	return "", errNoServerName
}

func readServerName(data []byte) (string, error) {
	if len(data) < 2 {
		return "", errNotClientHello
	}
	listLen := int(binary.BigEndian.Uint16(data))
	data = data[2:]
	if len(data) < listLen {
		return "", errNotClientHello
	}
	data = data[:listLen]

	for len(data) >= 3 {
		nameType := data[0]
		nameLen := int(binary.BigEndian.Uint16(data[1:]))
		data = data[3:]
		if len(data) < nameLen {
			return "", errNotClientHello
		}

		if nameType == serverNameTypeHostName {
			name := string(data[:nameLen])
			// An SNI value may not include a trailing dot.
			if strings.HasSuffix(name, ".") {
				return "", errNotClientHello
			}
			return name, nil
		}

		data = data[nameLen:]
	}

	return "", errNoServerName
}
