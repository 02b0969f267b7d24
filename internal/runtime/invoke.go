package runtime

import (
	"github.com/lumenlang/lumen/internal/symbols"
	"github.com/lumenlang/lumen/internal/values"
)

// DeclareFunction registers fn for dynamic calls under name. Names fold
// case; declaring both "Add" and "ADD" is a conflict.
func (c *Context) DeclareFunction(name string, fn values.BuiltinFunc) error {
	if fn == nil {
		return &ArgumentNullError{Param: "fn"}
	}
	if !c.symbols.DeclareRoutine(symbols.NewRoutine(name, fn)) {
		return &DuplicateDeclarationError{Name: name}
	}
	c.log.Debugw("declared function", "name", name, "context", c.id)
	return nil
}

// Call resolves name to a routine and invokes it. The routine body runs
// with full host privileges; whatever it does, it does.
func (c *Context) Call(name string, args ...values.Value) (values.Value, error) {
	h, ok := c.symbols.LookupRoutine(name)
	if !ok {
		return nil, &UndefinedRoutineError{Name: name}
	}
	return h.Invoke(args...)
}
