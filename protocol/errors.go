package protocol

import (
	"errors"
	"fmt"
)

// ParseError reports caller-supplied data that does not fit the protocol,
// such as a recipe containing an unknown command value.
type ParseError struct {
	// Value is the offending value
	Value uint16

	// Message describes the problem
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// IsParseError returns true if err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// UnimplementedSequenceError is the panic value raised when a generator is
// asked for a sequence type it does not implement. This is a programming
// error, never the result of external input.
type UnimplementedSequenceError struct {
	// Generator names the generator that was asked
	Generator string

	// Type is the requested sequence type
	Type SequenceType
}

func (e *UnimplementedSequenceError) Error() string {
	return fmt.Sprintf("%s: requested unimplemented sequence %s (%d)", e.Generator, e.Type, int(e.Type))
}

func unimplemented(generator string, t SequenceType) {
	panic(&UnimplementedSequenceError{Generator: generator, Type: t})
}
