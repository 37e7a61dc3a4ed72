package session

import (
	"math/rand"

	"github.com/simophin/cpxy/common/net"
)

// ID of a session.
type ID uint32

// NewID generates a new ID. The generated ID is high likely to be unique, but not cryptographically secure.
// The generated ID will never be 0.
func NewID() ID {
	for {
		id := ID(rand.Uint32())
		if id != 0 {
			return id
		}
	}
}

// Inbound is the metadata of an inbound connection.
type Inbound struct {
	// Source address of the inbound connection.
	Source net.Address
	// Gateway address
	Gateway net.Address
	// Original destination the source dialed before redirection.
	// The zero Address when the inbound is not transparently redirected.
	Original net.Address
	// Tag of the inbound proxy that handles the connection.
	Tag string
}

// Sniffed is the protocol metadata recovered from the first datagram.
type Sniffed struct {
	Protocol string
	Domain   string
}
