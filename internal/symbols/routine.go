package symbols

import "github.com/lumenlang/lumen/internal/values"

// RoutineHandle is a resolved reference to an invocable routine. It is
// immutable once created; many call sites may share one handle.
type RoutineHandle struct {
	name string
	fn   values.BuiltinFunc
}

func NewRoutine(name string, fn values.BuiltinFunc) *RoutineHandle {
	return &RoutineHandle{name: name, fn: fn}
}

// Name returns the declared spelling, not the folded lookup key.
func (h *RoutineHandle) Name() string { return h.name }

// Invoke runs the routine. The routine body may have arbitrary host-visible
// effects; nothing here sandboxes it.
func (h *RoutineHandle) Invoke(args ...values.Value) (values.Value, error) {
	return h.fn(args...)
}
