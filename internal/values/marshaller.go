package values

import (
	"fmt"
	"reflect"
)

// Marshaller handles conversion between Go and Lumen values.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

// ToValue converts a Go value to a Lumen Value.
func (m *Marshaller) ToValue(val interface{}) (Value, error) {
	if val == nil {
		return &Nil{}, nil
	}

	// Already in guest representation.
	if v, ok := val.(Value); ok {
		return v, nil
	}

	v := reflect.ValueOf(val)
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() {
		return &Nil{}, nil
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &Integer{Value: v.Int()}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Integer{Value: int64(v.Uint())}, nil
	case reflect.Float32, reflect.Float64:
		return &Float{Value: v.Float()}, nil
	case reflect.Bool:
		return &Boolean{Value: v.Bool()}, nil
	case reflect.String:
		return &String{Value: v.String()}, nil
	case reflect.Slice, reflect.Array:
		return m.sliceToList(v)
	case reflect.Map:
		return m.mapToRecord(v)
	case reflect.Struct:
		// Struct by value is copied field-wise into a Record.
		return m.structToRecord(v)
	case reflect.Func:
		return m.FuncToBuiltin("", v), nil
	case reflect.Ptr:
		// Pointer stays a reference.
		return &HostObject{Value: val}, nil
	default:
		return &HostObject{Value: val}, nil
	}
}

// FromValue converts a Lumen Value back to a Go value. targetType is
// optional; when provided the result is coerced to that type where a
// coercion exists.
func (m *Marshaller) FromValue(v Value, targetType reflect.Type) (interface{}, error) {
	if v == nil {
		return nil, nil
	}

	if targetType != nil && targetType == reflect.TypeOf((*Value)(nil)).Elem() {
		return v, nil
	}

	switch o := v.(type) {
	case *Nil:
		return nil, nil
	case *Integer:
		if targetType != nil {
			switch targetType.Kind() {
			case reflect.Int:
				return int(o.Value), nil
			case reflect.Int32:
				return int32(o.Value), nil
			case reflect.Int64:
				return o.Value, nil
			case reflect.Float64:
				return float64(o.Value), nil
			}
		}
		return int(o.Value), nil
	case *Float:
		return o.Value, nil
	case *Boolean:
		return o.Value, nil
	case *String:
		return o.Value, nil
	case *List:
		return m.listToSlice(o, targetType)
	case *Record:
		out := make(map[string]interface{}, len(o.Fields))
		for k, fv := range o.Fields {
			gv, err := m.FromValue(fv, nil)
			if err != nil {
				return nil, err
			}
			out[k] = gv
		}
		return out, nil
	case *Instance:
		return o, nil
	case *Builtin:
		return o, nil
	case *HostObject:
		return o.Value, nil
	default:
		return nil, fmt.Errorf("cannot convert %s to a host value", v.Type())
	}
}

// FuncToBuiltin adapts an arbitrary Go function into a Builtin. Guest
// arguments are converted to the function's parameter types, results are
// converted back; multiple results become a List.
func (m *Marshaller) FuncToBuiltin(name string, fn reflect.Value) *Builtin {
	return &Builtin{
		Name: name,
		Fn: func(args ...Value) (Value, error) {
			return m.callHostFunc(fn, args)
		},
	}
}

func (m *Marshaller) callHostFunc(fn reflect.Value, args []Value) (Value, error) {
	fnType := fn.Type()
	numIn := fnType.NumIn()
	isVariadic := fnType.IsVariadic()

	if isVariadic {
		if len(args) < numIn-1 {
			return nil, fmt.Errorf("expected at least %d arguments, got %d", numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf("expected %d arguments, got %d", numIn, len(args))
	}

	goArgs := make([]reflect.Value, len(args))
	for i, arg := range args {
		var targetType reflect.Type
		if isVariadic && i >= numIn-1 {
			targetType = fnType.In(numIn - 1).Elem()
		} else {
			targetType = fnType.In(i)
		}

		val, err := m.FromValue(arg, targetType)
		if err != nil {
			return nil, fmt.Errorf("argument %d conversion failed: %w", i, err)
		}
		if val == nil {
			// reflect.ValueOf(nil) is invalid; use the type's zero value.
			goArgs[i] = reflect.Zero(targetType)
			continue
		}

		rv := reflect.ValueOf(val)
		if !rv.Type().AssignableTo(targetType) {
			if !rv.Type().ConvertibleTo(targetType) {
				return nil, fmt.Errorf("argument %d conversion failed: cannot use %s as %s", i, rv.Type(), targetType)
			}
			rv = rv.Convert(targetType)
		}
		goArgs[i] = rv
	}

	results := fn.Call(goArgs)

	// Trailing error result follows the usual Go convention.
	if n := len(results); n > 0 && fnType.Out(n-1) == reflect.TypeOf((*error)(nil)).Elem() {
		if errv := results[n-1]; !errv.IsNil() {
			return nil, errv.Interface().(error)
		}
		results = results[:n-1]
	}

	switch len(results) {
	case 0:
		return &Nil{}, nil
	case 1:
		return m.ToValue(results[0].Interface())
	default:
		elements := make([]Value, len(results))
		for i, res := range results {
			v, err := m.ToValue(res.Interface())
			if err != nil {
				return nil, err
			}
			elements[i] = v
		}
		return &List{Elements: elements}, nil
	}
}

func (m *Marshaller) sliceToList(v reflect.Value) (Value, error) {
	elements := make([]Value, v.Len())
	for i := 0; i < v.Len(); i++ {
		el, err := m.ToValue(v.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		elements[i] = el
	}
	return &List{Elements: elements}, nil
}

func (m *Marshaller) listToSlice(l *List, targetType reflect.Type) (interface{}, error) {
	if targetType != nil && targetType.Kind() == reflect.Slice {
		out := reflect.MakeSlice(targetType, len(l.Elements), len(l.Elements))
		for i, el := range l.Elements {
			gv, err := m.FromValue(el, targetType.Elem())
			if err != nil {
				return nil, err
			}
			if gv != nil {
				out.Index(i).Set(reflect.ValueOf(gv))
			}
		}
		return out.Interface(), nil
	}

	out := make([]interface{}, len(l.Elements))
	for i, el := range l.Elements {
		gv, err := m.FromValue(el, nil)
		if err != nil {
			return nil, err
		}
		out[i] = gv
	}
	return out, nil
}

func (m *Marshaller) mapToRecord(v reflect.Value) (Value, error) {
	if v.Type().Key().Kind() != reflect.String {
		return &HostObject{Value: v.Interface()}, nil
	}
	fields := make(map[string]Value, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		fv, err := m.ToValue(iter.Value().Interface())
		if err != nil {
			return nil, err
		}
		fields[iter.Key().String()] = fv
	}
	return &Record{Fields: fields}, nil
}

func (m *Marshaller) structToRecord(v reflect.Value) (Value, error) {
	t := v.Type()
	fields := make(map[string]Value)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fv, err := m.ToValue(v.Field(i).Interface())
		if err != nil {
			return nil, err
		}
		fields[f.Name] = fv
	}
	return &Record{Fields: fields}, nil
}
