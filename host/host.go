//go:build unix

package host

import (
	"context"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/socketlib/errors"
	"github.com/wippyai/socketlib/resource"
	"github.com/wippyai/socketlib/socket"
)

// Status is the i32 result code returned to guests.
type Status uint32

const (
	StatusOK Status = iota
	StatusSocketCreation
	StatusInvalidAddress
	StatusBind
	StatusBadHandle
	StatusMemoryFault
	StatusUnsupported
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSocketCreation:
		return "socket-creation"
	case StatusInvalidAddress:
		return "invalid-address"
	case StatusBind:
		return "bind"
	case StatusBadHandle:
		return "bad-handle"
	case StatusMemoryFault:
		return "memory-fault"
	case StatusUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("status(%d)", uint32(s))
	}
}

// StatusOf maps an error returned by the socket package to a guest status.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	switch errors.KindOf(err) {
	case errors.KindSocketCreation:
		return StatusSocketCreation
	case errors.KindInvalidAddress:
		return StatusInvalidAddress
	case errors.KindBind:
		return StatusBind
	case errors.KindNotFound:
		return StatusBadHandle
	default:
		return StatusUnsupported
	}
}

type logObserver struct{}

func (logObserver) OnResourceEvent(e resource.Event) {
	Logger().Debug("guest socket "+e.Type.String(), zap.Uint32("handle", uint32(e.Handle)))
}

// Options configures the host module.
type Options struct {
	ModuleName string
	// MaxAddressLen bounds the literal bind reads from guest memory.
	MaxAddressLen uint32
}

// DefaultOptions returns default host configuration.
func DefaultOptions() Options {
	return Options{
		ModuleName:    "socketlib",
		MaxAddressLen: 256,
	}
}

// Host owns the sockets created by guests.
// Thread-safe.
type Host struct {
	sockets *resource.Table[*socket.Socket]
	lastErr map[resource.Handle]string
	options Options
	mu      sync.Mutex
}

// New creates a Host with the given options.
func New(opts Options) *Host {
	if opts.ModuleName == "" {
		opts.ModuleName = DefaultOptions().ModuleName
	}
	if opts.MaxAddressLen == 0 {
		opts.MaxAddressLen = DefaultOptions().MaxAddressLen
	}
	sockets := resource.NewTable[*socket.Socket]()
	sockets.Subscribe(logObserver{})
	return &Host{
		sockets: sockets,
		lastErr: make(map[resource.Handle]string),
		options: opts,
	}
}

// NewWithDefaults creates a Host with default options.
func NewWithDefaults() *Host {
	return New(DefaultOptions())
}

// Namespace returns the module name guests import from.
func (h *Host) Namespace() string {
	return h.options.ModuleName
}

// Sockets returns the table of live guest sockets.
func (h *Host) Sockets() *resource.Table[*socket.Socket] {
	return h.sockets
}

type hostFunc struct {
	fn          api.GoModuleFunc
	name        string
	paramNames  []string
	resultNames []string
}

func (h *Host) funcs() []hostFunc {
	return []hostFunc{
		{name: "socket", fn: h.socket, paramNames: []string{"family", "protocol"}, resultNames: []string{"handle", "status"}},
		{name: "bind", fn: h.bind, paramNames: []string{"handle", "ip_ptr", "ip_len", "port"}, resultNames: []string{"status"}},
		{name: "close", fn: h.close, paramNames: []string{"handle"}, resultNames: []string{"status"}},
		{name: "strerror", fn: h.strerror, paramNames: []string{"handle", "buf_ptr", "buf_len"}, resultNames: []string{"written"}},
	}
}

// Instantiate registers the host module in rt.
func (h *Host) Instantiate(ctx context.Context, rt wazero.Runtime) (api.Module, error) {
	builder := rt.NewHostModuleBuilder(h.options.ModuleName)

	for _, f := range h.funcs() {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(f.fn, i32s(len(f.paramNames)), i32s(len(f.resultNames))).
			WithParameterNames(f.paramNames...).
			WithResultNames(f.resultNames...).
			Export(f.name)
	}

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, fmt.Errorf("host: instantiate %q: %w", h.options.ModuleName, err)
	}
	Logger().Debug("host module instantiated", zap.String("module", h.options.ModuleName))
	return mod, nil
}

func i32s(n int) []api.ValueType {
	types := make([]api.ValueType, n)
	for i := range types {
		types[i] = api.ValueTypeI32
	}
	return types
}

// Close closes every socket still held for guests.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.lastErr)
	return h.sockets.Close()
}

// socket(family, protocol) -> (handle, status)
func (h *Host) socket(_ context.Context, _ api.Module, stack []uint64) {
	family := socket.AddressFamily(api.DecodeI32(stack[0]))
	protocol := socket.Protocol(api.DecodeI32(stack[1]))

	h.mu.Lock()
	defer h.mu.Unlock()

	s, err := socket.New(family, protocol)
	if err != nil {
		h.lastErr[0] = err.Error()
		stack[0], stack[1] = 0, uint64(StatusOf(err))
		return
	}

	handle, err := h.sockets.Insert(s)
	if err != nil {
		_ = s.Close()
		h.lastErr[0] = err.Error()
		stack[0], stack[1] = 0, uint64(StatusBadHandle)
		return
	}
	delete(h.lastErr, handle)
	stack[0], stack[1] = uint64(handle), uint64(StatusOK)
}

// bind(handle, ip_ptr, ip_len, port) -> status
func (h *Host) bind(_ context.Context, mod api.Module, stack []uint64) {
	handle := resource.Handle(api.DecodeU32(stack[0]))
	ptr, n := api.DecodeU32(stack[1]), api.DecodeU32(stack[2])
	port := api.DecodeU32(stack[3])

	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sockets.Get(handle)
	if !ok {
		stack[0] = uint64(StatusBadHandle)
		return
	}

	if n > h.options.MaxAddressLen || mod.Memory() == nil {
		h.lastErr[handle] = fmt.Sprintf("bind: address length %d unreadable", n)
		stack[0] = uint64(StatusMemoryFault)
		return
	}
	buf, ok := mod.Memory().Read(ptr, n)
	if !ok {
		h.lastErr[handle] = fmt.Sprintf("bind: address at %d+%d out of range", ptr, n)
		stack[0] = uint64(StatusMemoryFault)
		return
	}

	if port > 0xffff {
		h.lastErr[handle] = fmt.Sprintf("bind: port %d out of range", port)
		stack[0] = uint64(StatusInvalidAddress)
		return
	}

	err := s.BindConnection(string(buf), uint16(port))
	if err != nil {
		h.lastErr[handle] = err.Error()
		Logger().Debug("guest bind failed", zap.Uint32("handle", uint32(handle)), zap.Error(err))
	} else {
		delete(h.lastErr, handle)
	}
	stack[0] = uint64(StatusOf(err))
}

// close(handle) -> status
func (h *Host) close(_ context.Context, _ api.Module, stack []uint64) {
	handle := resource.Handle(api.DecodeU32(stack[0]))

	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.lastErr, handle)
	if err := h.sockets.Remove(handle); err != nil {
		Logger().Debug("guest close failed", zap.Uint32("handle", uint32(handle)), zap.Error(err))
		stack[0] = uint64(StatusBadHandle)
		return
	}
	stack[0] = uint64(StatusOK)
}

// strerror(handle, buf_ptr, buf_len) -> written
func (h *Host) strerror(_ context.Context, mod api.Module, stack []uint64) {
	handle := resource.Handle(api.DecodeU32(stack[0]))
	ptr, capacity := api.DecodeU32(stack[1]), api.DecodeU32(stack[2])

	h.mu.Lock()
	msg := h.lastErr[handle]
	h.mu.Unlock()

	if msg == "" || capacity == 0 || mod.Memory() == nil {
		stack[0] = 0
		return
	}
	if uint32(len(msg)) > capacity {
		msg = msg[:capacity]
	}
	if !mod.Memory().Write(ptr, []byte(msg)) {
		stack[0] = 0
		return
	}
	stack[0] = uint64(len(msg))
}
