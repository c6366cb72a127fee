package scope

import (
	"sync"

	"github.com/petermattis/goid"
)

// ---------------------------------------------------------------------------
// ThreadScoped: per-goroutine view of the $_ pseudo-variable
// ---------------------------------------------------------------------------

// ThreadScoped is the cell stored in a $_ slot. Each goroutine that writes
// $_ through a binding gets its own view; readers see only their own
// goroutine's last write. A slot written before the wrapper existed may
// still hold a raw value, which reads return as-is.
type ThreadScoped struct {
	mu    sync.RWMutex
	views map[int64]Value
}

func newThreadScoped(gid int64, v Value) *ThreadScoped {
	return &ThreadScoped{views: map[int64]Value{gid: v}}
}

func (c *ThreadScoped) load(gid int64) (Value, bool) {
	c.mu.RLock()
	v, ok := c.views[gid]
	c.mu.RUnlock()
	return v, ok
}

func (c *ThreadScoped) store(gid int64, v Value) {
	c.mu.Lock()
	c.views[gid] = v
	c.mu.Unlock()
}

// CurrentView unwraps v for the calling goroutine: the goroutine's own view
// of a *ThreadScoped cell (nil if it never wrote one), or v itself for any
// other value.
func CurrentView(v Value) Value {
	if cell, ok := v.(*ThreadScoped); ok {
		view, _ := cell.load(goid.Get())
		return view
	}
	return v
}

// lastLineGet reads $_ from the depth-0 frame only; $_ never resolves
// through the enclosing chain. This path bypasses lookup caches: the value
// seen depends on the calling goroutine, so a cached slot read would be
// wrong.
func (b *Binding) lastLineGet() (Value, error) {
	f := b.topFrame()
	slot, ok := f.shape.FindSlot(LastLine)
	if !ok {
		return nil, NewNameError(LastLine, b)
	}
	return CurrentView(f.Get(slot)), nil
}

// lastLineSet writes the calling goroutine's view of $_ into the depth-0
// frame, creating the slot if needed. An existing cell is updated in place
// so other goroutines keep their views.
func (b *Binding) lastLineSet(v Value) Value {
	f := b.topFrame()
	slot, ok := f.shape.FindSlot(LastLine)
	if !ok {
		slot = f.shape.AddSlot(LastLine)
	}
	gid := goid.Get()
	f.update(slot, func(old Value) Value {
		if cell, ok := old.(*ThreadScoped); ok {
			cell.store(gid, v)
			return cell
		}
		return newThreadScoped(gid, v)
	})
	return v
}
