// Package build lowers IR nodes to TypeScript syntax trees.
//
// Builders are pure: they never mutate their input, perform no I/O and
// return structurally identical trees for identical input. Malformed IR is
// reported as an *Error naming the offending kind and field; builders never
// emit partial output.
package build

import "fmt"

// Error reports malformed IR. Kind is the IR tag of the node being lowered
// (e.g. "binary_expression") and Field the offending field, if any.
type Error struct {
	Kind    string
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Kind == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func errMissing(kind, field string) *Error {
	return &Error{
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf("missing required field %q", field),
	}
}

func errInvalid(kind, field, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func errUnsupported(what string, v any) *Error {
	return &Error{
		Message: fmt.Sprintf("unsupported %s type: %T", what, v),
	}
}
