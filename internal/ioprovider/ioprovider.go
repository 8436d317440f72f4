// Package ioprovider defines the poll-based I/O capability surface the
// core drives itself on. A host supplies an implementation — native (this
// package's net-backed Provider) or a sandboxed/WASM equivalent — and the
// locator/controllers above never touch net or syscall directly.
//
// Every call is non-blocking: recv returns ok=false rather than blocking
// when nothing is available, and callers drive progress by polling on
// their own schedule.
package ioprovider

import "net"

// Addr is a typed IPv4 address + port. The core never passes addresses as
// strings.
type Addr struct {
	IP   [4]byte
	Port uint16
}

// String renders the address in dotted-quad:port form for logging.
func (a Addr) String() string {
	return net.JoinHostPort(
		net.IPv4(a.IP[0], a.IP[1], a.IP[2], a.IP[3]).String(),
		portString(a.Port),
	)
}

func portString(p uint16) string {
	const digits = "0123456789"
	if p == 0 {
		return "0"
	}
	var buf [5]byte
	i := len(buf)
	for p > 0 {
		i--
		buf[i] = digits[p%10]
		p /= 10
	}
	return string(buf[i:])
}

// AddrFromUDP converts a *net.UDPAddr into a typed Addr. It returns the
// zero Addr if a is nil or not IPv4.
func AddrFromUDP(a *net.UDPAddr) Addr {
	var out Addr
	if a == nil {
		return out
	}
	ip4 := a.IP.To4()
	if ip4 == nil {
		return out
	}
	copy(out.IP[:], ip4)
	out.Port = uint16(a.Port)
	return out
}

// UDPHandle and TCPHandle identify provider-owned sockets. Zero value is
// never valid; handles are returned by the Create/Connect calls below.
type UDPHandle uint32
type TCPHandle uint32

// Provider is the capability surface consumed by the locator and
// controllers. All methods are safe to call from a single goroutine only
// — the core itself never runs a Provider from more than one goroutine at
// a time.
type Provider interface {
	UDPCreate() (UDPHandle, error)
	UDPBind(h UDPHandle, port uint16) error
	UDPSetBroadcast(h UDPHandle, on bool) error
	UDPJoinMulticast(h UDPHandle, group Addr, iface Addr) error
	UDPSetMulticastInterface(h UDPHandle, iface Addr) error
	UDPSendTo(h UDPHandle, b []byte, dst Addr) error
	// UDPRecvFrom returns ok=false when no datagram is currently available.
	UDPRecvFrom(h UDPHandle, buf []byte) (n int, src Addr, ok bool, err error)
	UDPClose(h UDPHandle)

	TCPConnect(dst Addr) (TCPHandle, error)
	TCPSend(h TCPHandle, b []byte) error
	// TCPRecv returns ok=false when no data is currently available and no
	// error has occurred (the connection is still open, just idle).
	TCPRecv(h TCPHandle, buf []byte) (n int, ok bool, err error)
	TCPClose(h TCPHandle)

	NowMs() uint64
	Debug(msg string)
}
