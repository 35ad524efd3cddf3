package errors

import (
	"errors"
	"syscall"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "op and detail",
			err: &Error{
				Op:     "BindConnection",
				Kind:   KindBind,
				Detail: "sockfd is not a valid file descriptor.",
			},
			want: "BindConnection: sockfd is not a valid file descriptor.",
		},
		{
			name: "invalid address",
			err:  InvalidAddress("BindConnection", "1.2.3.x"),
			want: "BindConnection: Incorrect IPv4 address 1.2.3.x",
		},
		{
			name: "detail falls back to kind",
			err:  &Error{Op: "New", Kind: KindSocketCreation},
			want: "New: socket_creation",
		},
		{
			name: "no op",
			err:  &Error{Kind: KindBind, Detail: "Unexpected error."},
			want: "Unexpected error.",
		},
		{
			name: "cause is not rendered",
			err:  Bind("BindConnection", "Unexpected error.", syscall.EADDRNOTAVAIL),
			want: "BindConnection: Unexpected error.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	err := Bind("BindConnection", "in use", syscall.EADDRINUSE)

	if !errors.Is(err, syscall.EADDRINUSE) {
		t.Error("errors.Is did not reach the errno cause")
	}

	var errno syscall.Errno
	if !errors.As(err, &errno) {
		t.Fatal("errors.As did not find syscall.Errno")
	}
	if errno != syscall.EADDRINUSE {
		t.Errorf("errno = %v, want EADDRINUSE", errno)
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{Op: "BindConnection", Kind: KindBind}

	if !errors.Is(err, ErrBind) {
		t.Error("Is should match sentinel of same kind")
	}
	if errors.Is(err, ErrInvalidAddress) {
		t.Error("Is should not match different kind")
	}
	if !err.Is(&Error{Op: "BindConnection", Kind: KindBind}) {
		t.Error("Is should match same op and kind")
	}
	if err.Is(&Error{Op: "New", Kind: KindBind}) {
		t.Error("Is should not match different op")
	}
	if err.Is(errors.New("bind")) {
		t.Error("Is should not match foreign error types")
	}
}

func TestKindOf(t *testing.T) {
	wrapped := Wrap("host.bind", KindInvalidInput, SocketCreation("New", "x", nil), "outer")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"foreign", errors.New("boom"), ""},
		{"direct", InvalidAddress("BindConnection", "a"), KindInvalidAddress},
		{"outermost wins", wrapped, KindInvalidInput},
		{"unsupported", Unsupported("Read"), KindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilder(t *testing.T) {
	cause := syscall.EACCES
	err := New("New", KindSocketCreation).
		Value(2).
		Cause(cause).
		Detailf("family %d refused", 2).
		Build()

	if err.Op != "New" {
		t.Errorf("Op = %q, want %q", err.Op, "New")
	}
	if err.Kind != KindSocketCreation {
		t.Errorf("Kind = %v, want %v", err.Kind, KindSocketCreation)
	}
	if err.Value != 2 {
		t.Errorf("Value = %v, want 2", err.Value)
	}
	if err.Detail != "family 2 refused" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if !errors.Is(err, cause) {
		t.Error("Cause not set")
	}

	plain := New("Read", KindUnsupported).Detail("100%d literal").Build()
	if plain.Detail != "100%d literal" {
		t.Errorf("Detail should be kept verbatim, got %q", plain.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InvalidAddress", func(t *testing.T) {
		err := InvalidAddress("BindConnection", "300.1")
		if err.Error() != "BindConnection: Incorrect IPv4 address 300.1" {
			t.Errorf("Error() = %q", err.Error())
		}
		if err.Kind != KindInvalidAddress || err.Value != "300.1" {
			t.Errorf("unexpected error %+v", err)
		}
		if err.Cause != nil {
			t.Error("InvalidAddress should not carry a cause")
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound("close", uint32(7))
		if err.Error() != "close: 7 not found" {
			t.Errorf("Error() = %q", err.Error())
		}
		if !errors.Is(err, ErrNotFound) {
			t.Error("NotFound should match ErrNotFound")
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported("Write")
		if err.Error() != "Write: not implemented" {
			t.Errorf("Error() = %q", err.Error())
		}
	})
}
