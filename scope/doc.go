// Package scope implements the Garnet lexical binding subsystem.
//
// This package contains:
//   - Append-only frame shapes mapping variable names to stable slots
//   - A frame arena holding each scope's mutable slot storage, chained
//     through enclosing-frame links
//   - Bindings, first-class handles onto live frames
//   - The scope chain walker resolving names to (depth, slot) locations
//   - Adaptive per-call-site lookup caches with megamorphic retirement
//   - The thread-scoped cell behind the $_ pseudo-variable
package scope
