package scope

import (
	"errors"
	"slices"
	"testing"
)

// newTopLevelBinding captures a binding over a fresh empty top-level frame.
func newTopLevelBinding() *Binding {
	t := NewFrameTable()
	return Capture(t, t.NewFrame(NewShape(), NoFrame))
}

// newNestedBinding builds outer(vars...) <- inner(vars...) and returns a
// binding over the inner frame.
func newNestedBinding(outer, inner map[string]Value) *Binding {
	t := NewFrameTable()

	outerShape := NewShape()
	outerID := t.NewFrame(outerShape, NoFrame)
	outerFrame := t.Frame(outerID)
	for name, v := range outer {
		outerFrame.Set(outerShape.AddSlot(name), v)
	}

	innerShape := NewShape()
	innerID := t.NewFrame(innerShape, outerID)
	innerFrame := t.Frame(innerID)
	for name, v := range inner {
		innerFrame.Set(innerShape.AddSlot(name), v)
	}

	return Capture(t, innerID)
}

func TestBindingTopLevelScenario(t *testing.T) {
	b := newTopLevelBinding()

	if got := b.SetLocal("x", 10); got != 10 {
		t.Errorf("SetLocal returned %v, want 10", got)
	}

	v, err := b.GetLocal("x")
	if err != nil {
		t.Fatalf("GetLocal(x) failed: %v", err)
	}
	if v != 10 {
		t.Errorf("GetLocal(x) = %v, want 10", v)
	}

	_, err = b.GetLocal("y")
	var nameErr *NameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("GetLocal(y) error = %v, want *NameError", err)
	}
	if nameErr.Name != "y" {
		t.Errorf("NameError names %q, want y", nameErr.Name)
	}
	if nameErr.Binding != b {
		t.Error("NameError should carry the binding it was raised against")
	}

	names := slices.Collect(b.LocalVariableNames())
	if !slices.Equal(names, []string{"x"}) {
		t.Errorf("LocalVariableNames = %v, want [x]", names)
	}
}

func TestBindingRoundTrip(t *testing.T) {
	b := newTopLevelBinding()

	for _, tc := range []struct {
		name  string
		value Value
	}{
		{"n", 42},
		{"s", "hello"},
		{"nothing", nil},
	} {
		b.SetLocal(tc.name, tc.value)
		v, err := b.GetLocal(tc.name)
		if err != nil {
			t.Fatalf("GetLocal(%s) failed: %v", tc.name, err)
		}
		if v != tc.value {
			t.Errorf("GetLocal(%s) = %v, want %v", tc.name, v, tc.value)
		}
	}
}

func TestBindingShadowing(t *testing.T) {
	b := newNestedBinding(
		map[string]Value{"x": "outer"},
		map[string]Value{"x": "inner"},
	)

	v, err := b.GetLocal("x")
	if err != nil {
		t.Fatal(err)
	}
	if v != "inner" {
		t.Errorf("GetLocal(x) = %v, want the inner value", v)
	}

	// Both instances enumerate, inner first, no deduplication.
	names := slices.Collect(b.LocalVariableNames())
	if !slices.Equal(names, []string{"x", "x"}) {
		t.Errorf("LocalVariableNames = %v, want [x x]", names)
	}
}

func TestBindingOuterResolution(t *testing.T) {
	b := newNestedBinding(
		map[string]Value{"count": 3},
		map[string]Value{},
	)

	v, err := b.GetLocal("count")
	if err != nil {
		t.Fatal(err)
	}
	if v != 3 {
		t.Errorf("GetLocal(count) = %v, want 3", v)
	}

	// Writing an outer name mutates the outer frame, not depth 0.
	b.SetLocal("count", 4)
	if v, _ := b.GetLocal("count"); v != 4 {
		t.Errorf("GetLocal(count) after set = %v, want 4", v)
	}
	if _, ok := b.topFrame().shape.FindSlot("count"); ok {
		t.Error("Writing an outer name must not materialize a depth-0 slot")
	}
}

func TestBindingSetCreatesAtDepthZero(t *testing.T) {
	b := newNestedBinding(
		map[string]Value{"a": 1},
		map[string]Value{},
	)

	b.SetLocal("fresh", true)
	if slot, ok := b.topFrame().shape.FindSlot("fresh"); !ok || slot != 0 {
		t.Errorf("fresh should occupy depth-0 slot 0, got %d, %v", slot, ok)
	}
	if v, _ := b.GetLocal("fresh"); v != true {
		t.Error("GetLocal(fresh) should see the created local")
	}
}

func TestBindingMutationVisibleThroughCapture(t *testing.T) {
	table := NewFrameTable()
	shape := NewShapeWith("x")
	id := table.NewFrame(shape, NoFrame)
	frame := table.Frame(id)
	frame.Set(0, "before")

	b := Capture(table, id)

	// The frame keeps mutating after capture; the binding sees it.
	frame.Set(0, "after")
	if v, _ := b.GetLocal("x"); v != "after" {
		t.Errorf("GetLocal(x) = %v, want after", v)
	}

	// And mutation through the binding is visible to the frame's owner.
	b.SetLocal("x", "through binding")
	if v := frame.Get(0); v != "through binding" {
		t.Errorf("frame slot = %v, want through binding", v)
	}
}

func TestBindingDupDivergesAtDepthZero(t *testing.T) {
	b1 := newTopLevelBinding()
	b1.SetLocal("x", "original")

	b2 := b1.Dup()
	b2.SetLocal("x", "copy")

	if v, _ := b1.GetLocal("x"); v != "original" {
		t.Errorf("b1 x = %v, want original", v)
	}
	if v, _ := b2.GetLocal("x"); v != "copy" {
		t.Errorf("b2 x = %v, want copy", v)
	}
}

func TestBindingDupSharesEnclosingChain(t *testing.T) {
	b1 := newNestedBinding(
		map[string]Value{"shared": "old"},
		map[string]Value{"local": 1},
	)

	b2 := b1.Dup()
	b2.SetLocal("shared", "new")

	// shared lives at depth >= 1, so the write is visible through b1 too.
	if v, _ := b1.GetLocal("shared"); v != "new" {
		t.Errorf("b1 shared = %v, want new", v)
	}
}

func TestBindingDupDoesNotLeakNewLocals(t *testing.T) {
	b1 := newTopLevelBinding()
	b2 := b1.Dup()

	b2.SetLocal("only-in-copy", 1)
	if _, err := b1.GetLocal("only-in-copy"); err == nil {
		t.Error("Local created through the dup must not appear in the original")
	}
}

func TestBindingAllocateAlwaysFails(t *testing.T) {
	b, err := Allocate()
	if b != nil {
		t.Error("Allocate returned a binding")
	}
	var allocErr *AllocatorUndefinedError
	if !errors.As(err, &allocErr) {
		t.Fatalf("Allocate error = %v, want *AllocatorUndefinedError", err)
	}
	if allocErr.TypeName != "Binding" {
		t.Errorf("Allocator error names %q, want Binding", allocErr.TypeName)
	}
}

func TestLocalVariableNamesIsLazy(t *testing.T) {
	b := newTopLevelBinding()
	b.SetLocal("a", 1)

	seq := b.LocalVariableNames()

	// A local created after the sequence is built but before the walk
	// reaches the frame is still yielded.
	b.SetLocal("b", 2)

	names := slices.Collect(seq)
	if !slices.Equal(names, []string{"a", "b"}) {
		t.Errorf("LocalVariableNames = %v, want [a b]", names)
	}
}

func TestLocalVariableNamesEarlyStop(t *testing.T) {
	b := newNestedBinding(
		map[string]Value{"outer": 1},
		map[string]Value{"inner": 2},
	)

	var first string
	for name := range b.LocalVariableNames() {
		first = name
		break
	}
	if first != "inner" {
		t.Errorf("First yielded name = %q, want inner", first)
	}
}

func TestNameErrorMessage(t *testing.T) {
	b := newTopLevelBinding()
	_, err := b.GetLocal("missing")
	want := "undefined local variable or method `missing' for binding"
	if err == nil || err.Error() != want {
		t.Errorf("error = %v, want %q", err, want)
	}
}
