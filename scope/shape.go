package scope

import "sync"

// ---------------------------------------------------------------------------
// Shape: slot layout shared by frames created at the same lexical site
// ---------------------------------------------------------------------------

// Shape assigns stable slot indices to the local variable names of one
// lexical scope. Shapes are append-only: adding a name allocates the next
// index and existing indices never move, so a (depth, slot) pair resolved
// against a shape stays valid for as long as that shape is live.
//
// Shapes are compared by identity, never by content. Two frames created from
// the same lexical site share one Shape object; a structurally equal but
// distinct Shape is a different shape as far as lookup caches are concerned,
// because either copy can grow independently after the comparison.
type Shape struct {
	mu    sync.RWMutex
	slots map[string]int
	names []string // insertion order, parallel to slot indices
}

// NewShape creates an empty shape.
func NewShape() *Shape {
	return &Shape{slots: make(map[string]int)}
}

// NewShapeWith creates a shape predeclaring the given names in order.
func NewShapeWith(names ...string) *Shape {
	s := NewShape()
	for _, n := range names {
		s.AddSlot(n)
	}
	return s
}

// FindSlot returns the slot index for name, or false if the shape does not
// define it.
func (s *Shape) FindSlot(name string) (int, bool) {
	s.mu.RLock()
	slot, ok := s.slots[name]
	s.mu.RUnlock()
	return slot, ok
}

// AddSlot appends a slot for name and returns its index. If the name is
// already present the existing index is returned, so concurrent adds of the
// same name converge on one slot.
func (s *Shape) AddSlot(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot, ok := s.slots[name]; ok {
		return slot
	}
	slot := len(s.names)
	s.slots[name] = slot
	s.names = append(s.names, name)
	return slot
}

// Len returns the number of slots currently defined.
func (s *Shape) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}

// Names returns the slot names in slot order, as a copy.
func (s *Shape) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// copyShape returns a new shape with the same names in the same slot order.
// Used by Binding.Dup, which must detach the copy's layout from the original
// so that locals created later through one binding stay invisible to the
// other.
func (s *Shape) copyShape() *Shape {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := &Shape{
		slots: make(map[string]int, len(s.slots)),
		names: make([]string, len(s.names)),
	}
	copy(c.names, s.names)
	for n, i := range s.slots {
		c.slots[n] = i
	}
	return c
}
