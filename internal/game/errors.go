package game

import "fmt"

// MissingFieldsError is returned when a record has fewer fields than it needs.
type MissingFieldsError struct {
	Field string // first field that is absent
	Want  int
	Got   int
}

func (e *MissingFieldsError) Error() string {
	if e.Want > 0 {
		return fmt.Sprintf("missing %s: expected at least %d fields, got %d", e.Field, e.Want, e.Got)
	}
	return fmt.Sprintf("missing %s", e.Field)
}

// InvalidFieldError is returned when a field is present but does not parse
// as its required type.
type InvalidFieldError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidFieldError) Error() string {
	if nil != e.Err {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *InvalidFieldError) Unwrap() error {
	return e.Err
}

// StructuralMismatchError is returned when a record's shape does not match
// what its tag requires.
type StructuralMismatchError struct {
	Tag    string
	Reason string
}

func (e *StructuralMismatchError) Error() string {
	return fmt.Sprintf("%s: structural mismatch: %s", e.Tag, e.Reason)
}

// InvalidKindError is returned when a kind has no canonical tag.
type InvalidKindError struct {
	Kind NoteKind
}

func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("note kind (type %d, direction %d, raw %q) has no tag", e.Kind.Type, e.Kind.Direction, e.Kind.Raw)
}

// UnknownCodeError is returned when a code character is not recognised.
// Pos is the zero-based index of the code within its field.
type UnknownCodeError struct {
	Code string
	Pos  int
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown code %q at position %d", e.Code, e.Pos)
}
