package symbols

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lumenlang/lumen/internal/values"
)

// ErrNoVisibleConstructor is reported when a type has no constructor the
// caller is allowed to see.
var ErrNoVisibleConstructor = errors.New("no visible constructor")

// CallerIdentity names the class context a dynamic operation originates
// from. It gates visibility and nothing else. The zero value means "no
// class context": only public members resolve.
type CallerIdentity struct {
	Class string
}

// NoCaller is the public-only identity.
var NoCaller = CallerIdentity{}

func (c CallerIdentity) IsNone() bool { return c.Class == "" }

func (c CallerIdentity) String() string {
	if c.IsNone() {
		return "<none>"
	}
	return c.Class
}

type Visibility int

const (
	Public Visibility = iota
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "unknown"
	}
}

// Constructor is one declared constructor of a type together with its
// visibility.
type Constructor struct {
	Visibility Visibility
	Fn         values.BuiltinFunc
}

// ConstructorResolver picks the constructor delegate a given caller may
// use. The class model owns the exact matching algorithm; the default
// resolver below covers plain visibility gating.
type ConstructorResolver func(td *TypeDescriptor, caller CallerIdentity) (values.BuiltinFunc, error)

// TypeDescriptor is the metadata for a declared class: its name, its
// constructors, and the resolver that binds a caller identity to one of
// them. Resolution is a pure function of (type, caller) and is memoized,
// so repeated creation from the same context is a map hit.
type TypeDescriptor struct {
	name     string
	ctors    []Constructor
	resolver ConstructorResolver

	memo sync.Map // CallerIdentity -> resolution
}

type resolution struct {
	fn  values.BuiltinFunc
	err error
}

func NewType(name string, ctors ...Constructor) *TypeDescriptor {
	return &TypeDescriptor{name: name, ctors: ctors}
}

// NewTypeWithResolver builds a descriptor whose constructor binding is
// delegated to an external resolver (the class model's own algorithm).
func NewTypeWithResolver(name string, resolver ConstructorResolver, ctors ...Constructor) *TypeDescriptor {
	return &TypeDescriptor{name: name, ctors: ctors, resolver: resolver}
}

func (td *TypeDescriptor) Name() string { return td.name }

// Constructors returns a copy of the declared constructors.
func (td *TypeDescriptor) Constructors() []Constructor {
	out := make([]Constructor, len(td.ctors))
	copy(out, td.ctors)
	return out
}

// ResolveConstructor binds caller to a constructor delegate. The first
// resolution per caller identity is canonical; concurrent duplicate
// resolutions are wasted work, not a correctness problem.
func (td *TypeDescriptor) ResolveConstructor(caller CallerIdentity) (values.BuiltinFunc, error) {
	if got, ok := td.memo.Load(caller); ok {
		r := got.(resolution)
		return r.fn, r.err
	}

	fn, err := td.resolveUncached(caller)
	got, _ := td.memo.LoadOrStore(caller, resolution{fn: fn, err: err})
	r := got.(resolution)
	return r.fn, r.err
}

func (td *TypeDescriptor) resolveUncached(caller CallerIdentity) (values.BuiltinFunc, error) {
	if td.resolver != nil {
		return td.resolver(td, caller)
	}

	// Default gating: first constructor in declaration order the caller
	// may see. Overload selection beyond visibility belongs to a custom
	// resolver.
	for _, c := range td.ctors {
		if td.visibleTo(c, caller) {
			return c.Fn, nil
		}
	}
	return nil, fmt.Errorf("%w on type %s for caller %s", ErrNoVisibleConstructor, td.name, caller)
}

func (td *TypeDescriptor) visibleTo(c Constructor, caller CallerIdentity) bool {
	switch c.Visibility {
	case Public:
		return true
	case Protected:
		return !caller.IsNone()
	case Private:
		return Fold(caller.Class) == Fold(td.name)
	default:
		return false
	}
}
