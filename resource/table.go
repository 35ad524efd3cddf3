package resource

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

var (
	ErrClosed   = errors.New("resource table closed")
	ErrNotFound = errors.New("resource handle not found")
)

type entry[T io.Closer] struct {
	value T
	valid bool
}

// Table owns values of type T and hands out handles for them.
// Thread-safe.
type Table[T io.Closer] struct {
	entries   []entry[T]
	freeList  []Handle
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

// NewTable creates an empty table.
func NewTable[T io.Closer]() *Table[T] {
	return &Table[T]{
		entries:  make([]entry[T], 0, 16),
		freeList: make([]Handle, 0, 4),
	}
}

// Insert takes ownership of value and returns its handle.
func (t *Table[T]) Insert(value T) (Handle, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0, ErrClosed
	}

	var handle Handle
	if n := len(t.freeList); n > 0 {
		handle = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		t.entries[handle-1] = entry[T]{value: value, valid: true}
	} else {
		t.entries = append(t.entries, entry[T]{value: value, valid: true})
		handle = Handle(len(t.entries))
	}
	t.mu.Unlock()

	t.notify(Event{Type: EventCreated, Handle: handle, Value: value})
	return handle, nil
}

// Get retrieves a value by handle.
func (t *Table[T]) Get(handle Handle) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.lookup(handle)
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Take removes a value without closing it. The caller becomes its owner.
func (t *Table[T]) Take(handle Handle) (T, bool) {
	t.mu.Lock()
	e, ok := t.lookup(handle)
	if !ok {
		t.mu.Unlock()
		var zero T
		return zero, false
	}
	value := e.value
	t.entries[handle-1] = entry[T]{}
	t.freeList = append(t.freeList, handle)
	t.mu.Unlock()

	t.notify(Event{Type: EventDropped, Handle: handle, Value: value})
	return value, true
}

// Remove drops the handle and closes its value.
func (t *Table[T]) Remove(handle Handle) error {
	value, ok := t.Take(handle)
	if !ok {
		return fmt.Errorf("remove %d: %w", handle, ErrNotFound)
	}
	if err := value.Close(); err != nil {
		return fmt.Errorf("remove %d: %w", handle, err)
	}
	return nil
}

// lookup must be called with t.mu held.
func (t *Table[T]) lookup(handle Handle) (entry[T], bool) {
	if handle == 0 || int(handle) > len(t.entries) {
		return entry[T]{}, false
	}
	e := t.entries[handle-1]
	return e, e.valid
}

// Len returns the number of live values.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, e := range t.entries {
		if e.valid {
			n++
		}
	}
	return n
}

// Each calls fn for every live value in handle order until fn returns false.
// fn must not modify the table.
func (t *Table[T]) Each(fn func(Handle, T) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, e := range t.entries {
		if !e.valid {
			continue
		}
		if !fn(Handle(i+1), e.value) {
			return
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table[T]) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table[T]) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Close closes every live value and stops accepting inserts.
// Close is idempotent.
func (t *Table[T]) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true

	var handles []Handle
	for i, e := range t.entries {
		if e.valid {
			handles = append(handles, Handle(i+1))
		}
	}
	t.mu.Unlock()

	var errs []error
	for _, h := range handles {
		if err := t.Remove(h); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *Table[T]) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
