package runtime

import (
	"fmt"

	"github.com/lumenlang/lumen/internal/symbols"
	"github.com/lumenlang/lumen/internal/values"
)

// New instantiates a declared type with no caller context: only public
// constructors can resolve.
func (c *Context) New(typeName string, args ...values.Value) (values.Value, error) {
	return c.NewWithCaller(typeName, symbols.NoCaller, args...)
}

// NewWithCaller instantiates a declared type on behalf of caller. The
// caller identity gates which constructors are visible; it changes nothing
// else about the call.
func (c *Context) NewWithCaller(typeName string, caller symbols.CallerIdentity, args ...values.Value) (values.Value, error) {
	td, ok := c.symbols.LookupType(typeName)
	if !ok {
		return nil, &UndefinedTypeError{Name: typeName}
	}
	return c.NewFromDescriptor(td, caller, args...)
}

// NewFromDescriptor instantiates from an already-resolved descriptor.
// Resolution of (descriptor, caller) to a constructor delegate is memoized
// on the descriptor, so repeated creation does not repeat the visibility
// work. Any failure inside the constructor, error or panic, comes back
// wrapped in a ConstructionError.
func (c *Context) NewFromDescriptor(td *symbols.TypeDescriptor, caller symbols.CallerIdentity, args ...values.Value) (inst values.Value, err error) {
	if td == nil {
		return nil, &ArgumentNullError{Param: "td"}
	}

	ctor, rerr := td.ResolveConstructor(caller)
	if rerr != nil {
		return nil, &ConstructionError{TypeName: td.Name(), Cause: rerr}
	}

	defer func() {
		if r := recover(); r != nil {
			inst = nil
			err = &ConstructionError{TypeName: td.Name(), Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	inst, cerr := ctor(args...)
	if cerr != nil {
		return nil, &ConstructionError{TypeName: td.Name(), Cause: cerr}
	}
	return inst, nil
}
