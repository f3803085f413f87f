package protocol

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Pic16Generator builds command and timed sequences for PIC16 devices
// (6-bit commands, 14-bit payloads framed by a start and a stop bit).
//
// Pic16Generator has no state and is safe for concurrent use.
type Pic16Generator struct{}

// BuildCommand encodes a command with a framed payload.
//
//	[CMD(6)][START(1)=0][PAYLOAD(14)][STOP(1)=0]
//
// All fields are sent LSB first.
func (Pic16Generator) BuildCommand(cmd Pic16Command, payload uint16) PinStates {
	result := EncodeBits(uint32(cmd), Pic16CommandBits)
	result = append(result, EncodeBits(0, 1)...)
	result = append(result, EncodeBits(uint32(payload), Pic16PayloadBits)...)
	return append(result, EncodeBits(0, 1)...)
}

// BuildControlCommand encodes a command that carries no payload.
func (Pic16Generator) BuildControlCommand(cmd Pic16Command) PinStates {
	return EncodeBits(uint32(cmd), Pic16CommandBits)
}

// recipeCommands is the closed set of commands a recipe may contain.
var recipeCommands = map[Pic16Command]string{
	Pic16LoadConfiguration:        "load-configuration",
	Pic16IncrementAddress:         "increment-address",
	Pic16BeginProgrammingInternal: "begin-programming-internal",
	Pic16BeginProgrammingExternal: "begin-programming-external",
	Pic16EndProgramming:           "end-programming",
	Pic16EndProgrammingLegacy:     "end-programming-legacy",
	Pic16BulkEraseProgram:         "bulk-erase-program",
	Pic16BulkEraseData:            "bulk-erase-data",
}

var otherCommands = map[Pic16Command]string{
	Pic16LoadDataForProgram:  "load-data-program",
	Pic16LoadDataForData:     "load-data-data",
	Pic16ReadDataFromProgram: "read-data-program",
	Pic16ReadDataFromData:    "read-data-data",
	Pic16ResetAddress:        "reset-address",
}

// String returns the command name, or its value in hex for unnamed commands.
func (c Pic16Command) String() string {
	if name, ok := recipeCommands[c]; ok {
		return name
	}
	if name, ok := otherCommands[c]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", uint16(c))
}

// ParseOpcode converts a recipe element into a command value. Elements are
// either command names ("bulk-erase-data") or integer literals ("0x0B").
// Neither form is checked against the recipe vocabulary; run ValidateRecipe
// on the assembled recipe.
func ParseOpcode(s string) (uint16, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, names := range []map[Pic16Command]string{recipeCommands, otherCommands} {
		for cmd, n := range names {
			if n == name {
				return uint16(cmd), nil
			}
		}
	}

	v, err := strconv.ParseUint(name, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid command %q", s)
	}
	return uint16(v), nil
}

// ValidateRecipe checks that every element of recipe is a recipe command.
// It returns a *ParseError naming the first offending value.
func ValidateRecipe(recipe Recipe) error {
	for _, step := range recipe {
		if _, ok := recipeCommands[Pic16Command(step)]; !ok {
			return &ParseError{
				Value:   step,
				Message: fmt.Sprintf("invalid command value %d", step),
			}
		}
	}
	return nil
}

// CompileRecipe turns a validated recipe into a timed sequence.
//
// Commands are batched into a single step until a command that starts an
// erase or a programming cycle is reached; that step then carries the
// device erase or write time. Remaining commands are flushed in a final step
// with no delay. No empty steps are emitted.
func (g Pic16Generator) CompileRecipe(recipe Recipe, timing Timing) TimedSequence {
	var result TimedSequence
	var pending PinStates

	flush := func(delay time.Duration) {
		result = append(result, TimedStep{Data: pending, Delay: delay})
		pending = nil
	}

	for _, step := range recipe {
		cmd := Pic16Command(step)
		switch cmd {
		case Pic16LoadConfiguration:
			pending = append(pending, g.BuildCommand(cmd, 0)...)
		case Pic16BulkEraseProgram, Pic16BulkEraseData:
			pending = append(pending, g.BuildControlCommand(cmd)...)
			flush(timing.BulkErase)
		case Pic16BeginProgrammingInternal, Pic16BeginProgrammingExternal:
			pending = append(pending, g.BuildControlCommand(cmd)...)
			flush(timing.BlockWrite)
		default:
			pending = append(pending, g.BuildControlCommand(cmd)...)
		}
	}

	if len(pending) > 0 {
		flush(0)
	}
	return result
}

// BuildOperation returns the timed sequence for the requested operation.
//
// SequenceInit needs no device information. SequenceChipErase,
// SequenceEraseData and SequenceWriteData compile the matching recipe of dev
// with its timing, and require a non-nil dev. Any other type panics with
// *UnimplementedSequenceError.
func (g Pic16Generator) BuildOperation(t SequenceType, dev *DeviceInfo) TimedSequence {
	switch t {
	case SequenceInit:
		return DeviceEntrySequence()
	case SequenceChipErase, SequenceEraseData, SequenceWriteData:
		if dev == nil {
			panic(fmt.Sprintf("pic16: sequence %s requires device information", t))
		}
		recipe, _ := dev.Recipe(t)
		return g.CompileRecipe(recipe, dev.Timing)
	}

	unimplemented("pic16", t)
	return nil
}
