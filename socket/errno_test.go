//go:build unix

package socket

import (
	"errors"
	"fmt"
	"testing"

	"golang.org/x/sys/unix"
)

func TestCreationErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{unix.EACCES, "Permission to create a socket of the specified type and/or protocol is denied."},
		{unix.EAFNOSUPPORT, "The specified address family is not supported."},
		{unix.EMFILE, "The per-process descriptor table is full."},
		{unix.ENFILE, "The system file table is full."},
		{unix.ENOBUFS, "Insufficient buffer space is available. The socket cannot be created until sufficient resources are freed."},
		{unix.ENOMEM, "Insufficient memory was available to fulfill the request."},
		{unix.EPROTONOSUPPORT, "The protocol type or the specified protocol is not supported within this domain."},
		{unix.EPROTOTYPE, "The socket type is not supported by the protocol."},
		{unix.EADDRINUSE, "Unexpected error."},
		{nil, "Unexpected error."},
		{errors.New("not an errno"), "Unexpected error."},
		{fmt.Errorf("socket: %w", unix.EMFILE), "The per-process descriptor table is full."},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.err), func(t *testing.T) {
			if got := CreationErrorMessage(tt.err); got != tt.want {
				t.Errorf("CreationErrorMessage(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestBindErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{unix.EACCES, "The address is protected, and the user is not the superuser."},
		{unix.EADDRINUSE, "The given address is already in use. Or ... all port numbers in the ephemeral port range are currently in use."},
		{unix.EBADF, "sockfd is not a valid file descriptor."},
		{unix.EINVAL, "The socket is already bound to an address. Or addrlen is wrong, or addr is not a valid address for this socket's domain."},
		{unix.EAFNOSUPPORT, "The specified address family is not supported."},
		{unix.ENOTSOCK, "The file descriptor sockfd does not refer to a socket."},
		{unix.EADDRNOTAVAIL, "Unexpected error."},
		{unix.EMFILE, "Unexpected error."},
		{nil, "Unexpected error."},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.err), func(t *testing.T) {
			if got := BindErrorMessage(tt.err); got != tt.want {
				t.Errorf("BindErrorMessage(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
