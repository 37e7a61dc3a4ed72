// Package tproxy receives transparently redirected UDP datagrams together
// with the destination address the sender originally dialed.
//
// A firewall rule (iptables REDIRECT/TPROXY or the nftables equivalent)
// rewrites a datagram's destination so that it lands on a local socket.
// With the RECVORIGDSTADDR option enabled, the kernel attaches the
// pre-rewrite destination to each receive as an ancillary record; this
// package performs the single non-blocking receive that recovers payload,
// sender and that original destination in one call.
package tproxy

//go:generate go run github.com/simophin/cpxy/common/errors/errorgen
