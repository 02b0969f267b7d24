package runtime

import "fmt"

// UndefinedRoutineError reports a dynamic call to a name no routine was
// declared under.
type UndefinedRoutineError struct {
	Name string
}

func (e *UndefinedRoutineError) Error() string {
	return fmt.Sprintf("call to undefined routine %q", e.Name)
}

// UndefinedTypeError reports instantiation of an unregistered class name.
type UndefinedTypeError struct {
	Name string
}

func (e *UndefinedTypeError) Error() string {
	return fmt.Sprintf("undefined type %q", e.Name)
}

// DuplicateDeclarationError reports a redeclaration conflict. The symbol
// table owns the policy; this just surfaces it.
type DuplicateDeclarationError struct {
	Name string
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("%q is already declared", e.Name)
}

// ConstructionError wraps any failure raised while resolving or running a
// constructor. The cause is never swallowed.
type ConstructionError struct {
	TypeName string
	Cause    error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("constructing %s: %v", e.TypeName, e.Cause)
}

func (e *ConstructionError) Unwrap() error { return e.Cause }

// ArgumentNullError reports a nil reference where one is required.
type ArgumentNullError struct {
	Param string
}

func (e *ArgumentNullError) Error() string {
	return fmt.Sprintf("argument %q must not be nil", e.Param)
}

// UnsupportedOperationError marks a facility this facade deliberately does
// not implement.
type UnsupportedOperationError struct {
	Op string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation: %s", e.Op)
}
