package ioprovider

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/marinecore/radarcore/internal/logging"
)

var log = logging.Component("ioprovider")

// NetProvider is the native Provider implementation, backed by the
// standard library's net package. It is the Provider a cmd/radarctl host
// supplies; tests exercise the core against a fake Provider instead.
type NetProvider struct {
	mu       sync.Mutex
	nextUDP  UDPHandle
	nextTCP  TCPHandle
	udpConns map[UDPHandle]*net.UDPConn
	tcpConns map[TCPHandle]net.Conn
}

// NewNetProvider constructs an empty NetProvider ready to hand out handles.
func NewNetProvider() *NetProvider {
	return &NetProvider{
		udpConns: make(map[UDPHandle]*net.UDPConn),
		tcpConns: make(map[TCPHandle]net.Conn),
	}
}

func addrToUDPAddr(a Addr) *net.UDPAddr {
	return &net.UDPAddr{IP: net.IPv4(a.IP[0], a.IP[1], a.IP[2], a.IP[3]), Port: int(a.Port)}
}

func (p *NetProvider) UDPCreate() (UDPHandle, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: 0})
	if err != nil {
		return 0, fmt.Errorf("ioprovider: udp create: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextUDP++
	h := p.nextUDP
	p.udpConns[h] = conn
	return h, nil
}

func (p *NetProvider) UDPBind(h UDPHandle, port uint16) error {
	p.mu.Lock()
	old, ok := p.udpConns[h]
	p.mu.Unlock()
	if !ok {
		return fmt.Errorf("ioprovider: unknown udp handle %d", h)
	}
	_ = old.Close()
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: int(port)})
	if err != nil {
		return fmt.Errorf("ioprovider: udp bind %d: %w", port, err)
	}
	p.mu.Lock()
	p.udpConns[h] = conn
	p.mu.Unlock()
	return nil
}

func (p *NetProvider) UDPSetBroadcast(h UDPHandle, on bool) error {
	// net.UDPConn has no portable SetBroadcast; broadcast sockets work
	// without an explicit flag on Linux/BSD for non-privileged sends to
	// the limited broadcast address. Kept as a no-op hook so a future
	// platform-specific provider can intercept it.
	return nil
}

func (p *NetProvider) conn(h UDPHandle) (*net.UDPConn, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.udpConns[h]
	return c, ok
}

// UDPJoinMulticast rebinds the handle's socket as a multicast listener on
// group, optionally pinned to a specific local interface (the zero Addr
// means "any interface").
func (p *NetProvider) UDPJoinMulticast(h UDPHandle, group Addr, iface Addr) error {
	p.mu.Lock()
	old, ok := p.udpConns[h]
	p.mu.Unlock()
	if !ok {
		return fmt.Errorf("ioprovider: unknown udp handle %d", h)
	}
	localPort := 0
	if la, ok := old.LocalAddr().(*net.UDPAddr); ok {
		localPort = la.Port
	}
	_ = old.Close()

	ifi, err := ifaceForAddr(iface)
	if err != nil {
		return err
	}
	groupAddr := addrToUDPAddr(group)
	groupAddr.Port = localPort
	conn, err := net.ListenMulticastUDP("udp4", ifi, groupAddr)
	if err != nil {
		return fmt.Errorf("ioprovider: join multicast %s: %w", group, err)
	}
	p.mu.Lock()
	p.udpConns[h] = conn
	p.mu.Unlock()
	return nil
}

// UDPSetMulticastInterface is a no-op for the standard net-backed provider:
// the outgoing interface for multicast sends is selected at join time via
// UDPJoinMulticast's iface parameter on platforms that honor it.
func (p *NetProvider) UDPSetMulticastInterface(h UDPHandle, iface Addr) error {
	if _, ok := p.conn(h); !ok {
		return fmt.Errorf("ioprovider: unknown udp handle %d", h)
	}
	return nil
}

// ifaceForAddr resolves the typed Addr to a *net.Interface carrying that
// IPv4 address, or nil ("any interface") for the zero Addr.
func ifaceForAddr(a Addr) (*net.Interface, error) {
	if a == (Addr{}) {
		return nil, nil
	}
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("ioprovider: listing interfaces: %w", err)
	}
	want := net.IPv4(a.IP[0], a.IP[1], a.IP[2], a.IP[3])
	for i := range ifaces {
		addrs, err := ifaces[i].Addrs()
		if err != nil {
			continue
		}
		for _, ad := range addrs {
			ipNet, ok := ad.(*net.IPNet)
			if ok && ipNet.IP.Equal(want) {
				return &ifaces[i], nil
			}
		}
	}
	return nil, fmt.Errorf("ioprovider: no local interface with address %s", want)
}

func (p *NetProvider) UDPSendTo(h UDPHandle, b []byte, dst Addr) error {
	c, ok := p.conn(h)
	if !ok {
		return fmt.Errorf("ioprovider: unknown udp handle %d", h)
	}
	_, err := c.WriteToUDP(b, addrToUDPAddr(dst))
	if err != nil {
		return fmt.Errorf("ioprovider: udp send to %s: %w", dst, err)
	}
	return nil
}

func (p *NetProvider) UDPRecvFrom(h UDPHandle, buf []byte) (int, Addr, bool, error) {
	c, ok := p.conn(h)
	if !ok {
		return 0, Addr{}, false, fmt.Errorf("ioprovider: unknown udp handle %d", h)
	}
	_ = c.SetReadDeadline(time.Now().Add(time.Millisecond))
	n, src, err := c.ReadFromUDP(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return 0, Addr{}, false, nil
		}
		return 0, Addr{}, false, fmt.Errorf("ioprovider: udp recv: %w", err)
	}
	return n, AddrFromUDP(src), true, nil
}

func (p *NetProvider) UDPClose(h UDPHandle) {
	p.mu.Lock()
	c, ok := p.udpConns[h]
	delete(p.udpConns, h)
	p.mu.Unlock()
	if ok {
		_ = c.Close()
	}
}

func (p *NetProvider) TCPConnect(dst Addr) (TCPHandle, error) {
	conn, err := net.DialTimeout("tcp4", fmt.Sprintf("%d.%d.%d.%d:%d", dst.IP[0], dst.IP[1], dst.IP[2], dst.IP[3], dst.Port), 5*time.Second)
	if err != nil {
		return 0, fmt.Errorf("ioprovider: tcp connect %s: %w", dst, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextTCP++
	h := p.nextTCP
	p.tcpConns[h] = conn
	return h, nil
}

func (p *NetProvider) TCPSend(h TCPHandle, b []byte) error {
	p.mu.Lock()
	c, ok := p.tcpConns[h]
	p.mu.Unlock()
	if !ok {
		return fmt.Errorf("ioprovider: unknown tcp handle %d", h)
	}
	if _, err := c.Write(b); err != nil {
		return fmt.Errorf("ioprovider: tcp send: %w", err)
	}
	return nil
}

func (p *NetProvider) TCPRecv(h TCPHandle, buf []byte) (int, bool, error) {
	p.mu.Lock()
	c, ok := p.tcpConns[h]
	p.mu.Unlock()
	if !ok {
		return 0, false, fmt.Errorf("ioprovider: unknown tcp handle %d", h)
	}
	_ = c.SetReadDeadline(time.Now().Add(time.Millisecond))
	n, err := c.Read(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("ioprovider: tcp recv: %w", err)
	}
	return n, true, nil
}

func (p *NetProvider) TCPClose(h TCPHandle) {
	p.mu.Lock()
	c, ok := p.tcpConns[h]
	delete(p.tcpConns, h)
	p.mu.Unlock()
	if ok {
		_ = c.Close()
	}
}

func (p *NetProvider) NowMs() uint64 {
	return uint64(time.Now().UnixMilli())
}

func (p *NetProvider) Debug(msg string) {
	log("%s", msg)
}
