package scope

import "iter"

// ---------------------------------------------------------------------------
// Binding: a captured scope as a first-class value
// ---------------------------------------------------------------------------

// Binding wraps a single frame as depth 0 of a scope chain, letting a live
// scope escape the call that created it. The binding's identity is fixed at
// capture time but the frame behind it stays fully mutable, and mutations
// are visible both to the code still executing in the scope and to every
// holder of the binding.
type Binding struct {
	frames *FrameTable
	frame  FrameID
}

// Capture wraps the given frame as a binding. This is the only way a
// binding comes into existence; see Allocate.
func Capture(frames *FrameTable, frame FrameID) *Binding {
	return &Binding{frames: frames, frame: frame}
}

// Allocate is the construction path for a binding that bypasses capture.
// It fails unconditionally: there is no valid zero state for a binding.
func Allocate() (*Binding, error) {
	return nil, &AllocatorUndefinedError{TypeName: "Binding"}
}

// Table returns the frame table the binding resolves against.
func (b *Binding) Table() *FrameTable {
	return b.frames
}

// FrameID returns the binding's depth-0 frame ID.
func (b *Binding) FrameID() FrameID {
	return b.frame
}

// Dup returns a binding over a fresh copy of the depth-0 frame: same slot
// layout (copied, so locals created later do not leak between the two),
// value-by-value copy of every slot, same enclosing chain. Writes to
// depth-0 locals diverge after duplication; writes that resolve to an
// enclosing frame stay visible through both bindings.
func (b *Binding) Dup() *Binding {
	top := b.topFrame()
	shape := top.shape.copyShape()
	id := b.frames.NewFrame(shape, top.enclosing)

	copyFrame := b.frames.Frame(id)
	for slot, v := range top.snapshotValues() {
		copyFrame.Set(slot, v)
	}
	return Capture(b.frames, id)
}

// GetLocal reads the local variable name, resolving through the enclosing
// chain. Reading a name not defined anywhere in the chain returns a
// *NameError. LastLine is routed through its thread-scoped accessor.
func (b *Binding) GetLocal(name string) (Value, error) {
	if name == LastLine {
		return b.lastLineGet()
	}
	sd, ok := b.findSlot(name)
	if !ok {
		return nil, NewNameError(name, b)
	}
	return b.frameAt(sd.depth).Get(sd.slot), nil
}

// SetLocal writes the local variable name and returns the stored value.
// A name not defined anywhere in the chain is created in the depth-0 scope,
// so writes never fail. LastLine is routed through its thread-scoped
// accessor.
func (b *Binding) SetLocal(name string, v Value) Value {
	if name == LastLine {
		return b.lastLineSet(v)
	}
	sd := b.findOrAddSlot(name)
	b.frameAt(sd.depth).Set(sd.slot, v)
	return v
}

// LocalVariableNames yields every variable name visible through the
// binding, walking the chain innermost-first and each frame's shape in slot
// order. Names shadowed at an inner depth are still yielded for the outer
// frames that define them. The sequence is lazy: each frame's names are
// read as the walk reaches it.
func (b *Binding) LocalVariableNames() iter.Seq[string] {
	return func(yield func(string) bool) {
		for id := b.frame; id != NoFrame; {
			f := b.frames.Frame(id)
			for _, name := range f.shape.Names() {
				if !yield(name) {
					return
				}
			}
			id = f.enclosing
		}
	}
}
