package values

import "fmt"

// BuiltinFunc is the host-side signature every invocable routine reduces to.
// Arguments arrive already converted to guest representation.
type BuiltinFunc func(args ...Value) (Value, error)

// Builtin wraps a host-provided function so it can be declared and called
// by name like any guest routine.
type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

func (b *Builtin) Type() ValueType { return BUILTIN_VAL }
func (b *Builtin) Inspect() string { return fmt.Sprintf("<builtin %s>", b.Name) }
