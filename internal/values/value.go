package values

import "fmt"

type ValueType string

const (
	NIL_VAL      = "NIL"
	INTEGER_VAL  = "INTEGER"
	FLOAT_VAL    = "FLOAT"
	BOOLEAN_VAL  = "BOOLEAN"
	STRING_VAL   = "STRING"
	LIST_VAL     = "LIST"
	RECORD_VAL   = "RECORD"
	BUILTIN_VAL  = "BUILTIN"
	INSTANCE_VAL = "INSTANCE"
	HOST_VAL     = "HOST"
)

// Value is the runtime representation of a Lumen value as seen by the host.
// Everything that crosses the invocation boundary is a Value.
type Value interface {
	Type() ValueType
	Inspect() string
}

type Nil struct{}

func (n *Nil) Type() ValueType { return NIL_VAL }
func (n *Nil) Inspect() string { return "nil" }

type Integer struct {
	Value int64
}

func (i *Integer) Type() ValueType { return INTEGER_VAL }
func (i *Integer) Inspect() string { return fmt.Sprintf("%d", i.Value) }

type Float struct {
	Value float64
}

func (f *Float) Type() ValueType { return FLOAT_VAL }
func (f *Float) Inspect() string { return fmt.Sprintf("%g", f.Value) }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ValueType { return BOOLEAN_VAL }
func (b *Boolean) Inspect() string { return fmt.Sprintf("%t", b.Value) }

type String struct {
	Value string
}

func (s *String) Type() ValueType { return STRING_VAL }
func (s *String) Inspect() string { return fmt.Sprintf("%q", s.Value) }

type List struct {
	Elements []Value
}

func (l *List) Type() ValueType { return LIST_VAL }
func (l *List) Inspect() string {
	out := "["
	for i, el := range l.Elements {
		if i > 0 {
			out += ", "
		}
		out += el.Inspect()
	}
	return out + "]"
}

// Record is a field bag produced when a host struct or map crosses the
// boundary by value.
type Record struct {
	Fields map[string]Value
}

func (r *Record) Type() ValueType { return RECORD_VAL }
func (r *Record) Inspect() string {
	out := "{"
	first := true
	for k, v := range r.Fields {
		if !first {
			out += ", "
		}
		first = false
		out += k + ": " + v.Inspect()
	}
	return out + "}"
}

// Instance is a constructed guest object. The host layer treats it as
// opaque; the class model behind Fields lives in the analyzer, not here.
type Instance struct {
	ClassName string
	Fields    map[string]Value
}

func (o *Instance) Type() ValueType { return INSTANCE_VAL }
func (o *Instance) Inspect() string {
	return fmt.Sprintf("<%s instance>", o.ClassName)
}
