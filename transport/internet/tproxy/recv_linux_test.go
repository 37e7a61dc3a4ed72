//go:build linux

package tproxy

import (
	"encoding/binary"
	"syscall"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/simophin/cpxy/common/net"
)

func cmsgBytes(level, typ int32, data []byte) []byte {
	b := make([]byte, unix.CmsgSpace(len(data)))

	h := (*unix.Cmsghdr)(unsafe.Pointer(&b[0]))
	h.Level = level
	h.Type = typ
	h.SetLen(unix.CmsgLen(len(data)))

	copy(b[unix.CmsgLen(0):], data)

	return b
}

func sockaddrInet4Bytes(ip net.IP, port uint16) []byte {
	b := make([]byte, unix.SizeofSockaddrInet4)

	binary.NativeEndian.PutUint16(b[0:2], unix.AF_INET)
	binary.BigEndian.PutUint16(b[2:4], port)
	copy(b[4:8], ip.To4())

	return b
}

func sockaddrInet6Bytes(ip net.IP, port uint16) []byte {
	b := make([]byte, unix.SizeofSockaddrInet6)

	binary.NativeEndian.PutUint16(b[0:2], unix.AF_INET6)
	binary.BigEndian.PutUint16(b[2:4], port)
	copy(b[8:24], ip.To16())

	return b
}

func TestRetrieveOriginalDestInet4(t *testing.T) {
	oob := cmsgBytes(unix.SOL_IP, unix.IP_RECVORIGDSTADDR, sockaddrInet4Bytes(net.ParseIP("203.0.113.7"), 4443))

	dst, err := RetrieveOriginalDest(oob)
	require.NoError(t, err)
	require.True(t, dst.IsValid())
	require.Equal(t, "203.0.113.7:4443", dst.IPAddress())
	require.Equal(t, net.Network(net.Network_UDP), dst.Network)
}

func TestRetrieveOriginalDestInet6(t *testing.T) {
	oob := cmsgBytes(unix.SOL_IPV6, unix.IPV6_RECVORIGDSTADDR, sockaddrInet6Bytes(net.ParseIP("2001:db8::17"), 853))

	dst, err := RetrieveOriginalDest(oob)
	require.NoError(t, err)
	require.True(t, dst.IsValid())
	require.Equal(t, "[2001:db8::17]:853", dst.IPAddress())
}

func TestRetrieveOriginalDestAbsent(t *testing.T) {
	// An unrelated record is not an error, just no destination.
	ts := make([]byte, unsafe.Sizeof(unix.Timeval{}))
	oob := cmsgBytes(unix.SOL_SOCKET, unix.SCM_TIMESTAMP, ts)

	dst, err := RetrieveOriginalDest(oob)
	require.NoError(t, err)
	require.False(t, dst.IsValid())
	require.Equal(t, net.Address{}, dst)
}

func TestRetrieveOriginalDestShortRecord(t *testing.T) {
	short := sockaddrInet4Bytes(net.ParseIP("203.0.113.7"), 4443)[:unix.SizeofSockaddrInet4-4]
	oob := cmsgBytes(unix.SOL_IP, unix.IP_RECVORIGDSTADDR, short)

	dst, err := RetrieveOriginalDest(oob)
	require.Error(t, err)
	require.False(t, dst.IsValid())
}

func TestRetrieveOriginalDestWrongFamily(t *testing.T) {
	// An IPv4 record tag around an IPv6 sockaddr body must be rejected,
	// not read as IPv4.
	body := sockaddrInet6Bytes(net.ParseIP("2001:db8::17"), 853)
	oob := cmsgBytes(unix.SOL_IP, unix.IP_RECVORIGDSTADDR, body)

	dst, err := RetrieveOriginalDest(oob)
	require.Error(t, err)
	require.False(t, dst.IsValid())
}

func TestRetrieveOriginalDestOversizedRecord(t *testing.T) {
	// A header declaring a length past the end of the buffer must be
	// rejected, not followed.
	body := sockaddrInet6Bytes(net.ParseIP("2001:db8::17"), 853)
	oob := cmsgBytes(unix.SOL_IPV6, unix.IPV6_RECVORIGDSTADDR, body)

	h := (*unix.Cmsghdr)(unsafe.Pointer(&oob[0]))
	h.SetLen(unix.CmsgLen(4 * unix.SizeofSockaddrInet6))

	dst, err := RetrieveOriginalDest(oob)
	require.Error(t, err)
	require.False(t, dst.IsValid())
}

func TestRetrieveOriginalDestFirstMatchWins(t *testing.T) {
	first := cmsgBytes(unix.SOL_IP, unix.IP_RECVORIGDSTADDR, sockaddrInet4Bytes(net.ParseIP("192.0.2.1"), 1111))
	second := cmsgBytes(unix.SOL_IP, unix.IP_RECVORIGDSTADDR, sockaddrInet4Bytes(net.ParseIP("192.0.2.2"), 2222))

	dst, err := RetrieveOriginalDest(append(first, second...))
	require.NoError(t, err)
	require.Equal(t, "192.0.2.1:1111", dst.IPAddress())
}

func TestRetrieveOriginalDestSkipsUnrelatedRecords(t *testing.T) {
	ts := make([]byte, unsafe.Sizeof(unix.Timeval{}))
	unrelated := cmsgBytes(unix.SOL_SOCKET, unix.SCM_TIMESTAMP, ts)
	matched := cmsgBytes(unix.SOL_IP, unix.IP_RECVORIGDSTADDR, sockaddrInet4Bytes(net.ParseIP("198.51.100.9"), 53))

	dst, err := RetrieveOriginalDest(append(unrelated, matched...))
	require.NoError(t, err)
	require.Equal(t, "198.51.100.9:53", dst.IPAddress())
}

func TestReadMsgUDPNonblocking(t *testing.T) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	require.NoError(t, err)
	defer unix.Close(fd)

	err = unix.Bind(fd, &unix.SockaddrInet4{Addr: [4]byte{127, 0, 0, 1}})
	require.NoError(t, err)

	p := make([]byte, 2048)
	n, src, dst, err := ReadMsgUDP(fd, p)
	require.ErrorIs(t, err, unix.EAGAIN)
	require.Zero(t, n)
	require.False(t, src.IsValid())
	require.False(t, dst.IsValid())
}

func TestReadMsgUDPConnRecvOrigDst(t *testing.T) {
	address, err := net.ParseAddress(net.Network_UDP, "127.0.0.1:0")
	require.NoError(t, err)

	conn, err := ListenPacketRecvOrigDst(address)
	require.NoError(t, err)
	defer conn.Close()

	dialer, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	defer dialer.Close()

	payload := []byte("ping")
	_, err = dialer.WriteTo(payload, conn.LocalAddr())
	require.NoError(t, err)

	p := make([]byte, 2048)
	n, src, dst, err := ReadMsgUDPConn(conn.(syscall.Conn), p)
	require.NoError(t, err)
	require.Equal(t, payload, p[:n])
	require.Equal(t, dialer.LocalAddr().String(), src.IPAddress())

	// With the option on, the kernel reports the wire destination even
	// without redirection.
	require.True(t, dst.IsValid())
	require.Equal(t, conn.LocalAddr().String(), dst.IPAddress())
}

func TestReadMsgUDPConnOptionOff(t *testing.T) {
	conn, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	dialer, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	defer dialer.Close()

	_, err = dialer.WriteTo([]byte("ping"), conn.LocalAddr())
	require.NoError(t, err)

	p := make([]byte, 2048)
	n, src, dst, err := ReadMsgUDPConn(conn.(syscall.Conn), p)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.True(t, src.IsValid())
	require.False(t, dst.IsValid())
}

func TestReadMsgUDPConnIndependentReceives(t *testing.T) {
	address, err := net.ParseAddress(net.Network_UDP, "127.0.0.1:0")
	require.NoError(t, err)

	conn, err := ListenPacketRecvOrigDst(address)
	require.NoError(t, err)
	defer conn.Close()

	one, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	defer one.Close()

	two, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	defer two.Close()

	_, err = one.WriteTo([]byte("first"), conn.LocalAddr())
	require.NoError(t, err)
	_, err = two.WriteTo([]byte("second"), conn.LocalAddr())
	require.NoError(t, err)

	p := make([]byte, 2048)

	n, src, _, err := ReadMsgUDPConn(conn.(syscall.Conn), p)
	require.NoError(t, err)
	require.Equal(t, []byte("first"), p[:n])
	require.Equal(t, one.LocalAddr().String(), src.IPAddress())

	n, src, _, err = ReadMsgUDPConn(conn.(syscall.Conn), p)
	require.NoError(t, err)
	require.Equal(t, []byte("second"), p[:n])
	require.Equal(t, two.LocalAddr().String(), src.IPAddress())
}
