package scope

import "sync"

// Value is an opaque interpreter value. The binding subsystem never inspects
// values it stores, with one exception: the *ThreadScoped wrapper used for
// the $_ pseudo-variable.
type Value = any

// ---------------------------------------------------------------------------
// FrameTable: arena of frames addressed by stable IDs
// ---------------------------------------------------------------------------

// FrameID identifies a frame within a FrameTable. The enclosing-scope link
// is a FrameID rather than a pointer, which keeps the link explicitly
// non-owning: an enclosing frame stays reachable through the table for as
// long as the table is, regardless of which child captured it first.
type FrameID int32

// NoFrame terminates an enclosing-frame chain.
const NoFrame FrameID = -1

// FrameTable owns the storage for every frame in one interpreter instance.
type FrameTable struct {
	mu     sync.RWMutex
	frames []*Frame
}

// NewFrameTable creates an empty frame table.
func NewFrameTable() *FrameTable {
	return &FrameTable{}
}

// NewFrame allocates a frame using the given shape, chained to the enclosing
// frame (NoFrame for a top-level scope). The enclosing link is fixed for the
// life of the frame.
func (t *FrameTable) NewFrame(shape *Shape, enclosing FrameID) FrameID {
	f := &Frame{
		shape:     shape,
		enclosing: enclosing,
		values:    make([]Value, shape.Len()),
	}
	t.mu.Lock()
	id := FrameID(len(t.frames))
	t.frames = append(t.frames, f)
	t.mu.Unlock()
	return id
}

// Frame returns the frame for id, or nil for NoFrame.
func (t *FrameTable) Frame(id FrameID) *Frame {
	if id == NoFrame {
		return nil
	}
	t.mu.RLock()
	f := t.frames[id]
	t.mu.RUnlock()
	return f
}

// Len returns the number of frames allocated so far.
func (t *FrameTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.frames)
}

// ---------------------------------------------------------------------------
// Frame: one lexical scope's mutable variable storage
// ---------------------------------------------------------------------------

// Frame holds the current values of one scope's locals, parallel to its
// shape's slots. Frames are shared mutable state: the goroutine executing
// the scope and any holder of a Binding over it see the same storage. Slot
// access goes through the frame mutex, which gives writes the required
// cross-goroutine visibility without tearing.
type Frame struct {
	shape     *Shape
	enclosing FrameID

	mu     sync.RWMutex
	values []Value
}

// Shape returns the frame's shape.
func (f *Frame) Shape() *Shape {
	return f.shape
}

// Enclosing returns the lexically enclosing frame's ID, or NoFrame.
func (f *Frame) Enclosing() FrameID {
	return f.enclosing
}

// Get returns the value stored in slot. A slot added to the shape after the
// frame was created reads as nil until written.
func (f *Frame) Get(slot int) Value {
	f.mu.RLock()
	var v Value
	if slot < len(f.values) {
		v = f.values[slot]
	}
	f.mu.RUnlock()
	return v
}

// Set stores v into slot, growing the value storage if the shape has grown
// since the last write.
func (f *Frame) Set(slot int, v Value) {
	f.mu.Lock()
	f.grow(slot + 1)
	f.values[slot] = v
	f.mu.Unlock()
}

// update applies fn to the current value of slot and stores the result,
// atomically with respect to other slot accesses on this frame.
func (f *Frame) update(slot int, fn func(Value) Value) Value {
	f.mu.Lock()
	f.grow(slot + 1)
	v := fn(f.values[slot])
	f.values[slot] = v
	f.mu.Unlock()
	return v
}

// grow extends values to at least n entries. Caller holds f.mu.
func (f *Frame) grow(n int) {
	for len(f.values) < n {
		f.values = append(f.values, nil)
	}
}

// snapshotValues returns a copy of the current slot values, sized to the
// shape's current length.
func (f *Frame) snapshotValues() []Value {
	n := f.shape.Len()
	f.mu.RLock()
	out := make([]Value, n)
	copy(out, f.values)
	f.mu.RUnlock()
	return out
}
