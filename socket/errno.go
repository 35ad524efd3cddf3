//go:build unix

package socket

import (
	stderrors "errors"

	"golang.org/x/sys/unix"
)

const unexpectedError = "Unexpected error."

var creationMessages = map[unix.Errno]string{
	unix.EACCES: "Permission to create a socket of the specified " +
		"type and/or protocol is denied.",
	unix.EAFNOSUPPORT: "The specified address family is not supported.",
	unix.EMFILE:       "The per-process descriptor table is full.",
	unix.ENFILE:       "The system file table is full.",
	unix.ENOBUFS: "Insufficient buffer space is available. " +
		"The socket cannot be created until sufficient resources are freed.",
	unix.ENOMEM: "Insufficient memory was available to fulfill the request.",
	unix.EPROTONOSUPPORT: "The protocol type or the specified protocol is not " +
		"supported within this domain.",
	unix.EPROTOTYPE: "The socket type is not supported by the protocol.",
}

var bindMessages = map[unix.Errno]string{
	unix.EACCES: "The address is protected, and the user is not the superuser.",
	unix.EADDRINUSE: "The given address is already in use. " +
		"Or ... all port numbers in the ephemeral port range are currently in use.",
	unix.EBADF: "sockfd is not a valid file descriptor.",
	unix.EINVAL: "The socket is already bound to an address. " +
		"Or addrlen is wrong, or addr is not a valid address for this socket's domain.",
	unix.EAFNOSUPPORT: "The specified address family is not supported.",
	unix.ENOTSOCK:     "The file descriptor sockfd does not refer to a socket.",
}

// CreationErrorMessage translates an error returned by socket(2).
// Codes outside the table, and errors that carry no errno, read "Unexpected error.".
func CreationErrorMessage(err error) string {
	return lookupErrno(creationMessages, err)
}

// BindErrorMessage translates an error returned by bind(2).
func BindErrorMessage(err error) string {
	return lookupErrno(bindMessages, err)
}

func lookupErrno(table map[unix.Errno]string, err error) string {
	var errno unix.Errno
	if !stderrors.As(err, &errno) {
		return unexpectedError
	}
	if msg, ok := table[errno]; ok {
		return msg
	}
	return unexpectedError
}
