package devicedb

import "fmt"

// UnknownDeviceError indicates that a device name is not in the database.
type UnknownDeviceError struct {
	Name string
}

func (e *UnknownDeviceError) Error() string {
	return fmt.Sprintf("unknown device %q", e.Name)
}

// DeviceError reports an invalid entry in the device table.
type DeviceError struct {
	// Index is the position of the entry in the file (0-based)
	Index int

	// Name is the device name, if known
	Name string

	// Field is the offending key, e.g. "recipes.chip-erase"
	Field string

	// Err is the underlying problem
	Err error
}

func (e *DeviceError) Error() string {
	name := e.Name
	if name == "" {
		name = fmt.Sprintf("#%d", e.Index)
	}
	if e.Field == "" {
		return fmt.Sprintf("device %s: %v", name, e.Err)
	}
	return fmt.Sprintf("device %s: %s: %v", name, e.Field, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}
