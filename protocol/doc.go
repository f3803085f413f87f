// Package protocol implements the PIC in-circuit serial programming (ICSP)
// bit-level protocol.
//
// This package turns abstract programming commands into timed sequences of
// pin states that a bit-banging programmer clocks out to the target. It does
// no I/O: every function is a pure computation over its arguments.
//
// # Pin States
//
// Each byte of output is a bitmask over four programmer lines:
//
//	PinMCLR (0x01)  reset, high releases the target
//	PinPGM  (0x02)  low-voltage program mode enable
//	PinPGC  (0x04)  clock
//	PinPGD  (0x08)  data
//
// EncodeBits shifts values out LSB first, two pin states per bit:
//
//	[MCLR|PGM|PGC|d][MCLR|PGM|d]
//
// # Entering Programming Mode
//
// DeviceEntrySequence returns the three steps shared by all families: a
// reset pulse, the "MCHP" key shifted MSB first (data set up before each
// rising clock), and the release of reset with PGM held.
//
// # Command Dialects
//
// PIC18 devices use 4-bit commands with a 16-bit payload:
//
//	[CMD(4)][PAYLOAD(16)]
//
// PIC16 devices use 6-bit commands, optionally followed by a 14-bit payload
// framed by a start and a stop bit:
//
//	[CMD(6)][0][PAYLOAD(14)][0]
//
// # Timed Sequences
//
// Generators return a TimedSequence: a list of pin-state batches, each with
// the delay to observe after sending it.
//
//	gen := protocol.Pic18Generator{}
//	seq := gen.BuildOperation(protocol.SequenceBulkErase, dev)
//
// PIC16 erase and write procedures differ per device, so the device database
// stores them as recipes. A recipe is validated and compiled:
//
//	if err := protocol.ValidateRecipe(dev.ChipErase); err != nil {
//	    return err
//	}
//	seq := protocol.Pic16Generator{}.CompileRecipe(dev.ChipErase, dev.Timing)
//
// # Error Handling
//
// Invalid recipe contents are reported as *ParseError. Asking a generator for
// a sequence type it does not implement is a programming error and panics
// with *UnimplementedSequenceError; use Supports to check user input first.
package protocol
