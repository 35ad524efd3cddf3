// Package socketlib opens OS sockets and binds them to IPv4 addresses.
//
// The library validates dotted-decimal IPv4 literals, converts them to the
// OS address structure and translates creation and bind errno values into
// fixed diagnostic messages.
//
// # Packages
//
//	socketlib/
//	├── socket/           Socket handle, IPv4 validator, errno translation
//	├── errors/           Structured error kinds shared by all packages
//	├── resource/         Handle table owning live sockets
//	├── host/             wazero host module exposing sockets to guests
//	├── internal/config/  TOML bind plans for sockctl
//	└── cmd/sockctl/      Command line and interactive front end
//
// # Quick Start
//
//	s, err := socket.New(socket.Inet, socket.TCP)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	if err := s.BindConnection("127.0.0.1", 8080); err != nil {
//	    switch errors.KindOf(err) {
//	    case errors.KindInvalidAddress:
//	        // caller supplied a bad literal
//	    case errors.KindBind:
//	        // OS refused; the socket stays open and may be rebound
//	    }
//	}
//
// # Error Messages
//
// Every error renders as "<operation>: <detail>", for example
//
//	BindConnection: Incorrect IPv4 address 1.2.x.4
//	New: The specified address family is not supported.
//
// errors.Is matches both the error kind and the underlying errno:
//
//	errors.Is(err, errors.ErrBind)
//	errors.Is(err, unix.EADDRINUSE)
//
// # IPv4 Literal Checking
//
// IsIPv4Literal checks length and digit runs only. It does not count dots
// or bound octet values, so "12.34.567" and "999.999.999.999" are accepted.
// Out-of-range octets keep their low byte and are usually rejected by the
// kernel at bind time.
//
// # WebAssembly Guests
//
// host.Host registers a "socketlib" module in a wazero runtime with
// socket, bind, close and strerror functions. Sockets are held in a
// resource.Table and closed with the host.
package socketlib
