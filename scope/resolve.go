package scope

// ---------------------------------------------------------------------------
// Scope chain walking
// ---------------------------------------------------------------------------

// LastLine is the thread-sensitive "last read line" pseudo-variable. It is
// stored as an ordinary slot but its value is indirected through a
// per-goroutine cell, so it is excluded from generic slot search and handled
// by the last-line accessors in threadlocal.go.
const LastLine = "$_"

// slotAndDepth locates a variable in a binding's chain: slot within the
// shape of the frame depth enclosing hops up from the binding's frame.
type slotAndDepth struct {
	depth int
	slot  int
}

// findSlot walks the enclosing chain from the binding's frame, depth 0
// upward, and returns the location in the first frame whose shape defines
// name. Passing LastLine is a caller error.
func (b *Binding) findSlot(name string) (slotAndDepth, bool) {
	if name == LastLine {
		panic("scope: " + LastLine + " must go through the last-line accessors")
	}

	depth := 0
	for id := b.frame; id != NoFrame; depth++ {
		f := b.frames.Frame(id)
		if slot, ok := f.shape.FindSlot(name); ok {
			return slotAndDepth{depth: depth, slot: slot}, true
		}
		id = f.enclosing
	}
	return slotAndDepth{}, false
}

// findOrAddSlot resolves name like findSlot, but an absent name is created
// in the depth-0 shape: a local assigned through a binding materializes in
// the innermost scope, never in an enclosing one.
func (b *Binding) findOrAddSlot(name string) slotAndDepth {
	if sd, ok := b.findSlot(name); ok {
		return sd
	}
	slot := b.topFrame().shape.AddSlot(name)
	return slotAndDepth{depth: 0, slot: slot}
}

// frameAt returns the frame depth enclosing hops up from the binding's
// frame. The depth must come from a resolution against this binding.
func (b *Binding) frameAt(depth int) *Frame {
	id := b.frame
	for ; depth > 0; depth-- {
		id = b.frames.Frame(id).enclosing
	}
	return b.frames.Frame(id)
}

// topFrame returns the binding's depth-0 frame.
func (b *Binding) topFrame() *Frame {
	return b.frames.Frame(b.frame)
}
