package scope

import "fmt"

// NameError reports a read of a local variable that is not defined anywhere
// in a binding's enclosing chain. It carries the binding for diagnostics.
type NameError struct {
	Name    string
	Binding *Binding
}

// NewNameError creates a NameError for name against binding.
func NewNameError(name string, binding *Binding) *NameError {
	return &NameError{Name: name, Binding: binding}
}

func (e *NameError) Error() string {
	return fmt.Sprintf("undefined local variable or method `%s' for binding", e.Name)
}

// AllocatorUndefinedError reports an attempt to allocate a value of a type
// that has no allocator. Bindings can only come into existence by capturing
// a live frame, so Binding's allocation path fails unconditionally.
type AllocatorUndefinedError struct {
	TypeName string
}

func (e *AllocatorUndefinedError) Error() string {
	return fmt.Sprintf("allocator undefined for %s", e.TypeName)
}
