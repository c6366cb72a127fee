// Package snapshot serializes captured bindings for inspection and
// persistence. A snapshot is a point-in-time copy of every frame in a
// binding's enclosing chain: per-frame variable names in slot order and
// their values as seen by the capturing goroutine. Restoring builds fresh
// shapes and frames, so a restored binding never aliases live scopes.
package snapshot

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/garnet-lang/garnet/scope"
)

// cbor encoding uses canonical mode for deterministic output.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("snapshot: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// FrameData is one frame's captured state. Names are in slot order and
// Values is parallel to Names.
type FrameData struct {
	Names  []string      `cbor:"names"`
	Values []scope.Value `cbor:"values"`
}

// Snapshot captures a binding's full chain, innermost frame first.
type Snapshot struct {
	Frames []FrameData `cbor:"frames"`
}

// Capture copies the binding's chain into a snapshot. Thread-scoped cells
// are flattened to the calling goroutine's view. Values must be
// CBOR-encodable to survive Marshal; Capture itself copies anything.
func Capture(b *scope.Binding) *Snapshot {
	snap := &Snapshot{}

	table := b.Table()
	for id := b.FrameID(); id != scope.NoFrame; {
		f := table.Frame(id)
		names := f.Shape().Names()

		data := FrameData{
			Names:  names,
			Values: make([]scope.Value, len(names)),
		}
		for slot := range names {
			data.Values[slot] = scope.CurrentView(f.Get(slot))
		}
		snap.Frames = append(snap.Frames, data)

		id = f.Enclosing()
	}
	return snap
}

// Marshal serializes the snapshot to CBOR bytes.
func (s *Snapshot) Marshal() ([]byte, error) {
	data, err := cborEncMode.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("snapshot: marshal: %w", err)
	}
	return data, nil
}

// Unmarshal deserializes a snapshot from CBOR bytes.
func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("snapshot: unmarshal: %w", err)
	}
	return &s, nil
}

// Restore materializes the snapshot as live frames in table and returns a
// binding over the innermost one. Values decode to CBOR's generic Go
// representations (e.g. integers as uint64/int64).
func (s *Snapshot) Restore(table *scope.FrameTable) *scope.Binding {
	if len(s.Frames) == 0 {
		// A binding always has a depth-0 frame; give an empty snapshot one.
		return scope.Capture(table, table.NewFrame(scope.NewShape(), scope.NoFrame))
	}

	enclosing := scope.NoFrame

	// Build outermost-first so each frame can chain to its parent.
	for i := len(s.Frames) - 1; i >= 0; i-- {
		data := s.Frames[i]
		shape := scope.NewShapeWith(data.Names...)
		id := table.NewFrame(shape, enclosing)
		f := table.Frame(id)
		for slot, v := range data.Values {
			f.Set(slot, v)
		}
		enclosing = id
	}
	return scope.Capture(table, enclosing)
}
