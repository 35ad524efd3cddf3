// Package socket opens OS socket handles and binds them to local addresses.
//
// A Socket owns exactly one descriptor. It is created for an address family
// and a transport protocol, then bound once with BindConnection:
//
//	s, err := socket.New(socket.Inet, socket.TCP)
//	if err != nil {
//		return err // errors.KindSocketCreation
//	}
//	defer s.Close()
//
//	if err := s.BindConnection(" 127.0.0.1 ", 0); err != nil {
//		return err // errors.KindInvalidAddress or errors.KindBind
//	}
//
// # Address handling
//
// For Inet sockets the address is trimmed and checked with IsIPv4Literal
// before conversion. The check is syntactic: it bounds the length to 7..15
// bytes, requires every digit run to be 1..3 digits long and allows only '.'
// between runs. It does not count the dots and does not range-check octets,
// so "12.34.567" and "999.999.999.999" are accepted here and left for the
// kernel to reject at bind time.
//
// InetIPv6 and Unix sockets are bound with zero-valued address structures;
// address handling for those families is not implemented.
//
// # Errors
//
// OS error codes are translated into fixed diagnostic strings by
// CreationErrorMessage and BindErrorMessage. Every returned error is an
// *errors.Error whose message reads "<operation>: <detail>" and whose cause
// is the raw errno.
//
// # Ownership
//
// A Socket must not be copied; use the pointer returned by New. Close
// releases the descriptor exactly once. Detach hands the descriptor to the
// caller instead, leaving the Socket empty.
package socket
