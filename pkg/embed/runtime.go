// Package lumen is the embedding API of the Lumen host runtime. It wraps a
// runtime context and converts values at the boundary, so embedders work
// with plain Go values and functions.
package lumen

import (
	"reflect"

	"github.com/lumenlang/lumen/internal/runtime"
	"github.com/lumenlang/lumen/internal/symbols"
	"github.com/lumenlang/lumen/internal/values"
)

// Runtime wraps the underlying runtime context and provides a high-level
// embedding API.
type Runtime struct {
	ctx        *runtime.Context
	marshaller *values.Marshaller
}

// New creates a runtime. Options are forwarded to the context, so an
// embedder can share tables between runtimes or install a logger.
func New(opts ...runtime.Option) *Runtime {
	return &Runtime{
		ctx:        runtime.NewContext(opts...),
		marshaller: values.NewMarshaller(),
	}
}

// Context exposes the underlying context for collaborators that work in
// guest representation directly.
func (r *Runtime) Context() *runtime.Context { return r.ctx }

// Bind registers a Go value under name. Functions become callable guest
// routines; anything else is defined as a constant.
func (r *Runtime) Bind(name string, val interface{}) error {
	if fn := reflect.ValueOf(val); fn.IsValid() && fn.Kind() == reflect.Func {
		b := r.marshaller.FuncToBuiltin(name, fn)
		return r.ctx.DeclareFunction(name, b.Fn)
	}

	v, err := r.marshaller.ToValue(val)
	if err != nil {
		return err
	}
	if !r.ctx.DefineConstant(name, v, false) {
		return &runtime.DuplicateDeclarationError{Name: name}
	}
	return nil
}

// Call invokes a declared routine by name. Raw Go arguments are converted
// to guest representation first; values.Value arguments pass through
// untouched. The result comes back as a plain Go value.
func (r *Runtime) Call(name string, args ...interface{}) (interface{}, error) {
	guestArgs := make([]values.Value, len(args))
	for i, arg := range args {
		v, err := r.marshaller.ToValue(arg)
		if err != nil {
			return nil, err
		}
		guestArgs[i] = v
	}

	res, err := r.ctx.Call(name, guestArgs...)
	if err != nil {
		return nil, err
	}
	return r.marshaller.FromValue(res, nil)
}

// DeclareType registers a type for dynamic instantiation.
func (r *Runtime) DeclareType(td *symbols.TypeDescriptor) bool {
	return r.ctx.Symbols().DeclareType(td)
}

// NewInstance creates an instance of a declared type with no caller
// context (public constructors only).
func (r *Runtime) NewInstance(typeName string, args ...interface{}) (values.Value, error) {
	return r.NewInstanceWithCaller(typeName, symbols.NoCaller, args...)
}

// NewInstanceWithCaller creates an instance on behalf of a class context,
// which may unlock protected or private constructors.
func (r *Runtime) NewInstanceWithCaller(typeName string, caller symbols.CallerIdentity, args ...interface{}) (values.Value, error) {
	guestArgs := make([]values.Value, len(args))
	for i, arg := range args {
		v, err := r.marshaller.ToValue(arg)
		if err != nil {
			return nil, err
		}
		guestArgs[i] = v
	}
	return r.ctx.NewWithCaller(typeName, caller, guestArgs...)
}

// DefineConst defines a global constant from a Go value. Reports false
// when the name is already taken.
func (r *Runtime) DefineConst(name string, val interface{}, ignoreCase bool) (bool, error) {
	v, err := r.marshaller.ToValue(val)
	if err != nil {
		return false, err
	}
	return r.ctx.DefineConstant(name, v, ignoreCase), nil
}

// TryConst reads a global constant as a Go value.
func (r *Runtime) TryConst(name string) (interface{}, bool) {
	v, ok := r.ctx.Constant(name)
	if !ok {
		return nil, false
	}
	gv, err := r.marshaller.FromValue(v, nil)
	if err != nil {
		return nil, false
	}
	return gv, true
}
