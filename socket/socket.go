//go:build unix

package socket

import (
	"fmt"
	"net/netip"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/wippyai/socketlib/errors"
)

// Operation names used as the prefix of every error message.
const (
	OpNew            = "New"
	OpBindConnection = "BindConnection"
	OpRead           = "Read"
	OpWrite          = "Write"
)

// Syscall entry points, replaced in tests.
var (
	socketFunc      = unix.Socket
	bindFunc        = unix.Bind
	closeFunc       = unix.Close
	getsocknameFunc = unix.Getsockname
)

// State is the bind state of a Socket.
type State uint8

const (
	StateUnbound State = iota
	StateBound
	StateBindFailed
	StateClosed
	StateDetached
)

func (s State) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateBound:
		return "bound"
	case StateBindFailed:
		return "bind-failed"
	case StateClosed:
		return "closed"
	case StateDetached:
		return "detached"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// BoundAddress records a successful bind.
type BoundAddress struct {
	Addr Sockaddr
	IP   string // trimmed literal as passed to BindConnection
	Port uint16
}

// noCopy lets go vet's copylocks check flag copies of a Socket.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Socket owns one OS socket descriptor.
// A Socket is not safe for concurrent use.
type Socket struct {
	_        noCopy
	bound    *BoundAddress
	fd       int
	family   AddressFamily
	protocol Protocol
	state    State
}

// New opens a socket for the given family and protocol. The pair is not
// checked for compatibility; the OS decides. On failure no Socket is
// returned and the error has kind errors.KindSocketCreation.
func New(family AddressFamily, protocol Protocol) (*Socket, error) {
	fd, err := socketFunc(int(family), int(protocol), 0)
	if err != nil || fd < 0 {
		Logger().Debug("socket creation failed",
			zap.Stringer("family", family),
			zap.Stringer("protocol", protocol),
			zap.Error(err))
		return nil, errors.SocketCreation(OpNew, CreationErrorMessage(err), err)
	}

	Logger().Debug("socket created",
		zap.Int("fd", fd),
		zap.Stringer("family", family),
		zap.Stringer("protocol", protocol))

	return &Socket{
		fd:       fd,
		family:   family,
		protocol: protocol,
		state:    StateUnbound,
	}, nil
}

// BindConnection binds the socket to ip and port.
//
// ip is trimmed of surrounding ASCII whitespace (space, \t, \n, \v, \f,
// \r); other Unicode spaces are kept and fail validation. For Inet sockets it must pass
// IsIPv4Literal, otherwise an errors.KindInvalidAddress error is returned
// and nothing is changed. InetIPv6 and Unix sockets are bound with a
// zero-valued address.
//
// Every call reaches bind(2): binding an already bound socket reports the
// OS error rather than succeeding silently. A failed bind leaves the
// descriptor open.
func (s *Socket) BindConnection(ip string, port uint16) error {
	ip = TrimSpace(ip)

	addr, err := s.sockaddr(ip, port)
	if err != nil {
		return err
	}

	if err := bindFunc(s.fd, addr.raw()); err != nil {
		Logger().Debug("bind failed",
			zap.Int("fd", s.fd),
			zap.Stringer("addr", addr),
			zap.Error(err))
		if s.state == StateUnbound {
			s.state = StateBindFailed
		}
		return errors.Bind(OpBindConnection, BindErrorMessage(err), err)
	}

	s.bound = &BoundAddress{Addr: addr, IP: ip, Port: port}
	s.state = StateBound

	Logger().Debug("socket bound", zap.Int("fd", s.fd), zap.Stringer("addr", addr))
	return nil
}

func (s *Socket) sockaddr(ip string, port uint16) (Sockaddr, error) {
	switch s.family {
	case Inet:
		if !IsIPv4Literal(ip) {
			return nil, errors.InvalidAddress(OpBindConnection, ip)
		}
		return newInet4Addr(IPv4ToUint32(ip), port), nil
	case InetIPv6:
		// TODO: validate and populate IPv6 literals once the address parser lands.
		return &Inet6Addr{}, nil
	case Unix:
		return &UnixAddr{}, nil
	default:
		return nil, errors.Bind(OpBindConnection, BindErrorMessage(unix.EAFNOSUPPORT), unix.EAFNOSUPPORT)
	}
}

// Read is an extension point for data transfer. It is not implemented.
func (s *Socket) Read(p []byte) (int, error) {
	return 0, errors.Unsupported(OpRead)
}

// Write is an extension point for data transfer. It is not implemented.
func (s *Socket) Write(p []byte) (int, error) {
	return 0, errors.Unsupported(OpWrite)
}

// Close releases the descriptor. Only the first call closes it; later
// calls, and calls after Detach, return nil.
func (s *Socket) Close() error {
	if s.fd < 0 {
		return nil
	}
	fd := s.fd
	s.fd = -1
	s.state = StateClosed

	if err := closeFunc(fd); err != nil {
		return fmt.Errorf("close fd %d: %w", fd, err)
	}
	Logger().Debug("socket closed", zap.Int("fd", fd))
	return nil
}

// Detach transfers ownership of the descriptor to the caller, who becomes
// responsible for closing it. The Socket is left without a descriptor.
// Detach returns -1 if the Socket was already closed or detached.
func (s *Socket) Detach() int {
	fd := s.fd
	if fd >= 0 {
		s.fd = -1
		s.state = StateDetached
	}
	return fd
}

// Handle returns the descriptor, or -1 after Close or Detach.
func (s *Socket) Handle() int { return s.fd }

func (s *Socket) Family() AddressFamily { return s.family }
func (s *Socket) Protocol() Protocol    { return s.protocol }
func (s *Socket) State() State          { return s.state }

// BoundAddress returns the address recorded by the last successful
// BindConnection.
func (s *Socket) BoundAddress() (BoundAddress, bool) {
	if s.bound == nil {
		return BoundAddress{}, false
	}
	return *s.bound, true
}

// LocalAddr asks the OS for the address the socket is bound to. After
// binding port 0 this reports the port the kernel picked.
func (s *Socket) LocalAddr() (string, error) {
	sa, err := getsocknameFunc(s.fd)
	if err != nil {
		return "", fmt.Errorf("getsockname: %w", err)
	}
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return netip.AddrPortFrom(netip.AddrFrom4(a.Addr), uint16(a.Port)).String(), nil
	case *unix.SockaddrInet6:
		return netip.AddrPortFrom(netip.AddrFrom16(a.Addr), uint16(a.Port)).String(), nil
	case *unix.SockaddrUnix:
		return a.Name, nil
	default:
		return "", fmt.Errorf("getsockname: unsupported address %T", sa)
	}
}

func (s *Socket) String() string {
	return "socket(" + strconv.Itoa(s.fd) + ", " + s.family.String() + "/" + s.protocol.String() + ", " + s.state.String() + ")"
}
