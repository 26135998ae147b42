package application

import "errors"

var (
	// ErrUnknownField is returned when a value targets a field the form does
	// not declare.
	ErrUnknownField = errors.New("application: unknown field")
	// ErrInvalidValue is returned when a value has the wrong Go shape for its
	// field, such as a number for fullName.
	ErrInvalidValue = errors.New("application: invalid value")
)
