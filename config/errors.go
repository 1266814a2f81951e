package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var (
	ErrMissingField = errors.New("missing field")
	ErrInvalidValue = errors.New("invalid value")
)

// MissingFieldError is returned when a field without a default has no
// environment variable set.
type MissingFieldError struct {
	Field  string
	EnvVar string
}

func (e *MissingFieldError) Error() string {
	if e.EnvVar == "" {
		return fmt.Sprintf("missing field %q", e.Field)
	}
	return fmt.Sprintf("missing field %q (set %s)", e.Field, e.EnvVar)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// InvalidValueError is returned when a raw value cannot be converted to the
// field's type. Expected is set for enumerated fields and holds the accepted
// literals.
type InvalidValueError struct {
	Field    string
	EnvVar   string
	Value    string
	Expected []string
	Err      error
}

func (e *InvalidValueError) Error() string {
	var b strings.Builder
	b.WriteString("invalid value ")
	b.WriteString(strconv.Quote(e.Value))

	if e.Field != "" {
		fmt.Fprintf(&b, " for field %q", e.Field)
	}
	if e.EnvVar != "" {
		fmt.Fprintf(&b, " (%s)", e.EnvVar)
	}

	switch {
	case len(e.Expected) > 0:
		quoted := make([]string, len(e.Expected))
		for i, lit := range e.Expected {
			quoted[i] = strconv.Quote(lit)
		}
		fmt.Fprintf(&b, ", expected one of [%s]", strings.Join(quoted, ", "))
	case e.Err != nil:
		fmt.Fprintf(&b, ": %v", e.Err)
	}

	return b.String()
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// InvalidTargetError is returned when the loader is handed something other
// than a non-nil pointer to a struct.
type InvalidTargetError struct {
	Type reflect.Type
}

func (e *InvalidTargetError) Error() string {
	if e.Type == nil {
		return "config: target must be a non-nil pointer to struct, got nil"
	}
	return fmt.Sprintf("config: target must be a non-nil pointer to struct, got %s", e.Type)
}

// UnsupportedTypeError is returned for schema fields the loader cannot
// populate from a single string.
type UnsupportedTypeError struct {
	Field string
	Type  reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("config: field %q has unsupported type %s", e.Field, e.Type)
}
