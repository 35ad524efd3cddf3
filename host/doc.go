// Package host exposes socket creation and binding to WebAssembly guests as
// a wazero host module.
//
// The module (named "socketlib" by default) exports:
//
//	socket(family i32, protocol i32) -> (handle i32, status i32)
//	bind(handle i32, ip_ptr i32, ip_len i32, port i32) -> status i32
//	close(handle i32) -> status i32
//	strerror(handle i32, buf_ptr i32, buf_len i32) -> written i32
//
// family and protocol carry the host OS constants (see socket.Inet,
// socket.TCP). bind reads the address literal from the caller's memory.
// strerror copies the message of the last failed call on handle into the
// caller's buffer; handle 0 holds the last socket creation failure.
//
// Usage:
//
//	rt := wazero.NewRuntime(ctx)
//	defer rt.Close(ctx)
//
//	h := host.NewWithDefaults()
//	defer h.Close()
//
//	if _, err := h.Instantiate(ctx, rt); err != nil {
//		return err
//	}
//	// instantiate guests importing "socketlib"
//
// Sockets live in a resource.Table owned by the Host; Close closes any the
// guest left open.
package host
