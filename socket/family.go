//go:build unix

package socket

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

// AddressFamily selects the addressing scheme. Values are the host OS
// constants and are passed to socket(2) unchanged.
type AddressFamily int

const (
	Inet     AddressFamily = unix.AF_INET
	InetIPv6 AddressFamily = unix.AF_INET6
	Unix     AddressFamily = unix.AF_UNIX
)

func (f AddressFamily) String() string {
	switch f {
	case Inet:
		return "inet"
	case InetIPv6:
		return "inet6"
	case Unix:
		return "unix"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// ParseAddressFamily maps a textual family name to its AddressFamily.
func ParseAddressFamily(s string) (AddressFamily, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inet", "ipv4", "ip4":
		return Inet, nil
	case "inet6", "ipv6", "ip6":
		return InetIPv6, nil
	case "unix", "local":
		return Unix, nil
	default:
		return 0, fmt.Errorf("unknown address family %q", s)
	}
}

// Protocol selects the transport semantics: stream or datagram.
type Protocol int

const (
	TCP Protocol = unix.SOCK_STREAM
	UDP Protocol = unix.SOCK_DGRAM
)

func (p Protocol) String() string {
	switch p {
	case TCP:
		return "tcp"
	case UDP:
		return "udp"
	default:
		return fmt.Sprintf("protocol(%d)", int(p))
	}
}

// ParseProtocol maps a textual protocol name to its Protocol.
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tcp", "stream":
		return TCP, nil
	case "udp", "dgram", "datagram":
		return UDP, nil
	default:
		return 0, fmt.Errorf("unknown protocol %q", s)
	}
}
