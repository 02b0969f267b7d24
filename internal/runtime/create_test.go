package runtime

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lumenlang/lumen/internal/symbols"
	"github.com/lumenlang/lumen/internal/values"
)

func pointCtor(tag string) values.BuiltinFunc {
	return func(args ...values.Value) (values.Value, error) {
		return &values.Instance{
			ClassName: "Point",
			Fields:    map[string]values.Value{"made_by": &values.String{Value: tag}},
		}, nil
	}
}

func declarePoint(t *testing.T, ctx *Context) {
	t.Helper()
	td := symbols.NewType("Point",
		symbols.Constructor{Visibility: symbols.Private, Fn: pointCtor("private")},
		symbols.Constructor{Visibility: symbols.Public, Fn: pointCtor("public")},
	)
	if !ctx.Symbols().DeclareType(td) {
		t.Fatalf("DeclareType failed")
	}
}

func madeBy(t *testing.T, v values.Value) string {
	t.Helper()
	inst, ok := v.(*values.Instance)
	if !ok {
		t.Fatalf("expected *values.Instance, got %T", v)
	}
	return inst.Fields["made_by"].(*values.String).Value
}

func TestNewResolvesPublicConstructor(t *testing.T) {
	ctx := NewContext()
	declarePoint(t, ctx)

	v, err := ctx.New("Point")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := madeBy(t, v); got != "public" {
		t.Errorf("no-caller creation must use the public constructor, got %q", got)
	}

	// Type names fold case like routine names.
	if _, err := ctx.New("POINT"); err != nil {
		t.Errorf("folded type lookup failed: %v", err)
	}
}

func TestNewWithCallerSeesPrivate(t *testing.T) {
	ctx := NewContext()
	declarePoint(t, ctx)

	v, err := ctx.NewWithCaller("Point", symbols.CallerIdentity{Class: "Point"})
	if err != nil {
		t.Fatalf("NewWithCaller failed: %v", err)
	}
	first := madeBy(t, v)

	// Repeated creation resolves the same delegate every time.
	for i := 0; i < 10; i++ {
		v, err := ctx.NewWithCaller("Point", symbols.CallerIdentity{Class: "Point"})
		if err != nil {
			t.Fatalf("repeat %d failed: %v", i, err)
		}
		if got := madeBy(t, v); got != first {
			t.Fatalf("resolution must be deterministic: got %q then %q", first, got)
		}
	}
}

func TestNewUndefinedType(t *testing.T) {
	ctx := NewContext()

	_, err := ctx.New("Ghost")
	var undef *UndefinedTypeError
	if !errors.As(err, &undef) {
		t.Fatalf("expected UndefinedTypeError, got %v", err)
	}
}

func TestNewPrivateOnlyTypeWithoutCaller(t *testing.T) {
	ctx := NewContext()
	td := symbols.NewType("Secret",
		symbols.Constructor{Visibility: symbols.Private, Fn: pointCtor("private")},
	)
	if !ctx.Symbols().DeclareType(td) {
		t.Fatalf("DeclareType failed")
	}

	// Even a sole private constructor must not resolve publicly.
	_, err := ctx.New("Secret")
	var cons *ConstructionError
	if !errors.As(err, &cons) {
		t.Fatalf("expected ConstructionError, got %v", err)
	}
	if !errors.Is(err, symbols.ErrNoVisibleConstructor) {
		t.Errorf("cause should be ErrNoVisibleConstructor, got %v", cons.Cause)
	}
}

func TestNewFromDescriptorNil(t *testing.T) {
	ctx := NewContext()

	_, err := ctx.NewFromDescriptor(nil, symbols.NoCaller)
	var null *ArgumentNullError
	if !errors.As(err, &null) {
		t.Fatalf("expected ArgumentNullError, got %v", err)
	}
}

func TestConstructorPanicIsWrapped(t *testing.T) {
	ctx := NewContext()
	td := symbols.NewType("Volatile",
		symbols.Constructor{Visibility: symbols.Public, Fn: func(args ...values.Value) (values.Value, error) {
			panic("boom")
		}},
	)
	if !ctx.Symbols().DeclareType(td) {
		t.Fatalf("DeclareType failed")
	}

	v, err := ctx.New("Volatile")
	if v != nil {
		t.Errorf("a panicking constructor must not produce a value, got %v", v)
	}
	var cons *ConstructionError
	if !errors.As(err, &cons) {
		t.Fatalf("expected ConstructionError, got %v", err)
	}
	if cons.TypeName != "Volatile" {
		t.Errorf("error should name the type, got %q", cons.TypeName)
	}
	if cons.Cause == nil || !strings.Contains(cons.Cause.Error(), "boom") {
		t.Errorf("panic value must be preserved as the cause, got %v", cons.Cause)
	}
}

func TestConstructorFailureIsWrapped(t *testing.T) {
	ctx := NewContext()
	boom := fmt.Errorf("constructor exploded")
	td := symbols.NewType("Bomb",
		symbols.Constructor{Visibility: symbols.Public, Fn: func(args ...values.Value) (values.Value, error) {
			return nil, boom
		}},
	)
	if !ctx.Symbols().DeclareType(td) {
		t.Fatalf("DeclareType failed")
	}

	_, err := ctx.New("Bomb")
	var cons *ConstructionError
	if !errors.As(err, &cons) {
		t.Fatalf("expected ConstructionError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("cause must be preserved, got %v", cons.Cause)
	}
}
