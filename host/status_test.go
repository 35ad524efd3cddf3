//go:build unix

package host

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/socketlib/errors"
	"github.com/wippyai/socketlib/resource"
)

func uint32ToHandle(v uint64) resource.Handle {
	return resource.Handle(uint32(v))
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Status
	}{
		{"nil", nil, StatusOK},
		{"creation", errors.SocketCreation("New", "x", nil), StatusSocketCreation},
		{"invalid address", errors.InvalidAddress("BindConnection", "x"), StatusInvalidAddress},
		{"bind", errors.Bind("BindConnection", "x", nil), StatusBind},
		{"not found", errors.NotFound("close", 3), StatusBadHandle},
		{"unsupported", errors.Unsupported("Read"), StatusUnsupported},
		{"foreign", stderrors.New("boom"), StatusUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.want {
				t.Errorf("StatusOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatus_String(t *testing.T) {
	if StatusMemoryFault.String() != "memory-fault" {
		t.Errorf("String() = %q", StatusMemoryFault.String())
	}
	if Status(99).String() != "status(99)" {
		t.Errorf("String() = %q", Status(99).String())
	}
}
