package values

import "fmt"

// HostObject wraps a Go value (typically a pointer) passed into the runtime
// by reference. The marshaller produces one whenever a host value has no
// natural guest representation.
type HostObject struct {
	Value interface{}
}

func (h *HostObject) Type() ValueType { return HOST_VAL }

func (h *HostObject) Inspect() string {
	return fmt.Sprintf("<HostObject: %T>", h.Value)
}
