package programmer

import (
	"fmt"

	"github.com/Mark-G1/fpicprog/protocol"
)

// ShortWriteError indicates that the transport accepted fewer pin states than sent.
type ShortWriteError struct {
	Step     int
	Written  int
	Expected int
}

func (e *ShortWriteError) Error() string {
	return fmt.Sprintf("short write in step %d: wrote %d of %d pin states",
		e.Step, e.Written, e.Expected)
}

// UnsupportedSequenceError indicates that a device family has no sequence of the requested type.
type UnsupportedSequenceError struct {
	Device string
	Family protocol.Family
	Type   protocol.SequenceType
}

func (e *UnsupportedSequenceError) Error() string {
	return fmt.Sprintf("device %s (%s) does not support operation %s",
		e.Device, e.Family, e.Type)
}

// EmptyRecipeError indicates that a device has no recipe for a recipe-based
// operation, so running it would send nothing.
type EmptyRecipeError struct {
	Device string
	Type   protocol.SequenceType
}

func (e *EmptyRecipeError) Error() string {
	return fmt.Sprintf("device %s has no %s recipe", e.Device, e.Type)
}
