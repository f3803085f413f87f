package protocol

import (
	"fmt"
	"strings"
	"time"
)

// PinState is an instantaneous value of the four programmer-controlled lines.
type PinState byte

// String renders the asserted lines, e.g. "MCLR|PGM|PGC".
func (p PinState) String() string {
	if p&pinMask == 0 {
		return "-"
	}

	var names []string
	if p&PinMCLR != 0 {
		names = append(names, "MCLR")
	}
	if p&PinPGM != 0 {
		names = append(names, "PGM")
	}
	if p&PinPGC != 0 {
		names = append(names, "PGC")
	}
	if p&PinPGD != 0 {
		names = append(names, "PGD")
	}
	return strings.Join(names, "|")
}

// PinStates is an ordered sequence of pin states in transmission order.
type PinStates []PinState

// Bytes returns the raw bytes to hand to the programmer hardware.
func (s PinStates) Bytes() []byte {
	out := make([]byte, len(s))
	for i, p := range s {
		out[i] = byte(p)
	}
	return out
}

// Recipe is a device-specific PIC16 erase or write procedure, expressed as an
// ordered list of command codes.
type Recipe []uint16

// TimedStep pairs pin states with the time to wait after transmitting them.
type TimedStep struct {
	// Data is transmitted in order
	Data PinStates

	// Delay is the settling time before the next step; zero means continue immediately
	Delay time.Duration
}

// TimedSequence fully describes one logical operation.
type TimedSequence []TimedStep

// Len returns the total number of pin states across all steps.
func (s TimedSequence) Len() int {
	n := 0
	for _, step := range s {
		n += len(step.Data)
	}
	return n
}

// TotalDelay returns the sum of all step delays.
func (s TimedSequence) TotalDelay() time.Duration {
	var d time.Duration
	for _, step := range s {
		d += step.Delay
	}
	return d
}

// Timing contains the per-device programming delays.
type Timing struct {
	// BulkErase is the time needed for a bulk erase cycle
	BulkErase time.Duration

	// BlockWrite is the time needed to program one block
	BlockWrite time.Duration

	// ConfigWrite is the time needed to program a configuration word
	ConfigWrite time.Duration
}

// DeviceInfo holds the parameters of a device as supplied by the device database.
type DeviceInfo struct {
	// Name is the part name, e.g. "PIC16F1847"
	Name string

	// Family selects the command dialect
	Family Family

	// DeviceID is the value read from the device ID location
	DeviceID uint16

	// ProgramMemorySize is the program memory size in words
	ProgramMemorySize uint32

	// DataMemorySize is the EEPROM size in bytes
	DataMemorySize uint32

	// Timing holds the device programming delays
	Timing Timing

	// ChipErase erases program memory, configuration and data memory (PIC16 only)
	ChipErase Recipe

	// DataErase erases the data memory (PIC16 only)
	DataErase Recipe

	// DataWrite programs one block of data (PIC16 only)
	DataWrite Recipe
}

// Recipe returns the recipe a PIC16 sequence type compiles, and whether t is
// a recipe-based sequence at all.
func (d *DeviceInfo) Recipe(t SequenceType) (Recipe, bool) {
	switch t {
	case SequenceChipErase:
		return d.ChipErase, true
	case SequenceEraseData:
		return d.DataErase, true
	case SequenceWriteData:
		return d.DataWrite, true
	default:
		return nil, false
	}
}

// Family identifies a device family and therefore a command dialect.
type Family int

const (
	// FamilyPIC16 uses 6-bit commands with a framed 14-bit payload
	FamilyPIC16 Family = iota + 1

	// FamilyPIC18 uses 4-bit commands with a 16-bit payload
	FamilyPIC18
)

func (f Family) String() string {
	switch f {
	case FamilyPIC16:
		return "pic16"
	case FamilyPIC18:
		return "pic18"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// ParseFamily converts a family name such as "pic16" into a Family.
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pic16":
		return FamilyPIC16, nil
	case "pic18":
		return FamilyPIC18, nil
	default:
		return 0, fmt.Errorf("unknown device family %q", name)
	}
}

// SequenceType names a canned or compiled operation sequence.
type SequenceType int

const (
	// SequenceInit enters programming mode (both families)
	SequenceInit SequenceType = iota

	// SequenceBulkErase erases the whole device (PIC18)
	SequenceBulkErase

	// SequenceWrite finishes a program memory block write (PIC18)
	SequenceWrite

	// SequenceWriteConfig finishes a configuration write (PIC18)
	SequenceWriteConfig

	// SequenceChipErase runs the device chip erase recipe (PIC16)
	SequenceChipErase

	// SequenceEraseData runs the device data memory erase recipe (PIC16)
	SequenceEraseData

	// SequenceWriteData runs the device data memory write recipe (PIC16)
	SequenceWriteData
)

var sequenceNames = map[SequenceType]string{
	SequenceInit:        "init",
	SequenceBulkErase:   "bulk-erase",
	SequenceWrite:       "write",
	SequenceWriteConfig: "write-config",
	SequenceChipErase:   "chip-erase",
	SequenceEraseData:   "erase-data",
	SequenceWriteData:   "write-data",
}

func (t SequenceType) String() string {
	if name, ok := sequenceNames[t]; ok {
		return name
	}
	return fmt.Sprintf("sequence(%d)", int(t))
}

// ParseSequenceType converts an operation name such as "chip-erase" into a SequenceType.
func ParseSequenceType(name string) (SequenceType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range sequenceNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", name)
}
