//go:build unix

package socket

import (
	"encoding/binary"
	"net/netip"

	"golang.org/x/sys/unix"
)

// Sockaddr is the address a socket is bound to. The concrete type is
// selected by the socket's family: *Inet4Addr, *Inet6Addr or *UnixAddr.
type Sockaddr interface {
	Family() AddressFamily
	String() string

	// raw returns the structure handed to bind(2).
	raw() unix.Sockaddr
}

// Inet4Addr is an IPv4 address and port.
// Addr holds the octets in network byte order.
type Inet4Addr struct {
	Addr [4]byte
	Port uint16
}

func newInet4Addr(host uint32, port uint16) *Inet4Addr {
	a := &Inet4Addr{Port: port}
	binary.BigEndian.PutUint32(a.Addr[:], host)
	return a
}

func (a *Inet4Addr) Family() AddressFamily { return Inet }

func (a *Inet4Addr) String() string {
	return netip.AddrPortFrom(netip.AddrFrom4(a.Addr), a.Port).String()
}

func (a *Inet4Addr) raw() unix.Sockaddr {
	// unix.SockaddrInet4 converts Port to network byte order itself.
	return &unix.SockaddrInet4{Port: int(a.Port), Addr: a.Addr}
}

// Inet6Addr stands in for an IPv6 address. IPv6 binding is not implemented:
// the structure is always zero-valued.
type Inet6Addr struct{}

func (a *Inet6Addr) Family() AddressFamily { return InetIPv6 }
func (a *Inet6Addr) String() string        { return "inet6 (unpopulated)" }
func (a *Inet6Addr) raw() unix.Sockaddr    { return &unix.SockaddrInet6{} }

// UnixAddr stands in for a Unix-domain path. Unix-domain binding is not
// implemented: the structure is always zero-valued.
type UnixAddr struct{}

func (a *UnixAddr) Family() AddressFamily { return Unix }
func (a *UnixAddr) String() string        { return "unix (unpopulated)" }
func (a *UnixAddr) raw() unix.Sockaddr    { return &unix.SockaddrUnix{} }
