// Package resource maps small integer handles to owned values.
//
// The table is how sockets are handed across boundaries that can only carry
// integers, such as a WebAssembly guest or an interactive session:
//
//	table := resource.NewTable[*socket.Socket]()
//
//	// Insert takes ownership, returns a handle
//	h, err := table.Insert(s)
//
//	// Look up by handle
//	s, ok := table.Get(h)
//
//	// Remove closes the value
//	err = table.Remove(h)
//
//	// Take removes without closing, handing ownership back
//	s, ok = table.Take(h)
//
// Handle 0 is never issued. Freed handles are reused, most recent first.
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	table.Subscribe(observer) // receives EventCreated and EventDropped
//
// Close closes every remaining value and rejects further inserts.
package resource
