package protocol

import "time"

// Pin-state bits. Each byte sent to the programmer hardware is a bitmask of
// these four signals.
const (
	// PinMCLR is the reset line (high releases the target from reset)
	PinMCLR PinState = 0x01

	// PinPGM is the low-voltage program-mode enable line
	PinPGM PinState = 0x02

	// PinPGC is the ICSP clock line
	PinPGC PinState = 0x04

	// PinPGD is the ICSP data line
	PinPGD PinState = 0x08

	// pinMask covers all meaningful pin bits
	pinMask = PinMCLR | PinPGM | PinPGC | PinPGD
)

// EntryKey is the 32-bit key ("MCHP") shifted in to enter low-voltage programming mode.
const EntryKey uint32 = 0x4D434850

// Entry sequence constants.
const (
	// EntryKeyBits is the number of key bits shifted in, MSB first
	EntryKeyBits = 32

	// EntryResetDelay is the settling time after pulsing the reset line
	EntryResetDelay = 10 * time.Millisecond

	// EntryKeyHoldDelay is the hold time after the key. The three-pin variant
	// needs 40ns, the two-pin variant several microseconds.
	EntryKeyHoldDelay = 20 * time.Microsecond

	// EntryProgramModeDelay is the time the target needs to enter programming mode
	EntryProgramModeDelay = 400 * time.Microsecond
)

// Default PIC18 timings, used when no device information is supplied.
const (
	// DefaultBulkEraseDelay is the bulk erase time for PIC18 devices
	DefaultBulkEraseDelay = 500 * time.Millisecond

	// DefaultBlockWriteDelay is the block write time for PIC18 devices
	DefaultBlockWriteDelay = time.Millisecond

	// DefaultConfigWriteDelay is the configuration write time for PIC18 devices
	DefaultConfigWriteDelay = time.Millisecond

	// WriteHighVoltageDischarge is the discharge time after a PIC18 write (P10)
	WriteHighVoltageDischarge = 200 * time.Microsecond
)

// Command framing widths.
const (
	// Pic18CommandBits is the width of a PIC18 command
	Pic18CommandBits = 4

	// Pic18PayloadBits is the width of a PIC18 payload
	Pic18PayloadBits = 16

	// Pic16CommandBits is the width of a PIC16 command
	Pic16CommandBits = 6

	// Pic16PayloadBits is the width of a PIC16 payload, excluding start and stop bits
	Pic16PayloadBits = 14

	// MaxEncodedBits is the widest value EncodeBits and DecodeBits handle
	MaxEncodedBits = 32
)

// Pic18Command is a 4-bit PIC18 ICSP command.
type Pic18Command uint8

// PIC18 command codes per the PIC18FXXK programming specifications.
const (
	// Pic18CoreInstruction shifts in a 16-bit instruction for the core to execute
	Pic18CoreInstruction Pic18Command = 0x0

	// Pic18ShiftOutTablat shifts out the TABLAT register
	Pic18ShiftOutTablat Pic18Command = 0x2

	// Pic18TableRead reads a byte via TBLPTR
	Pic18TableRead Pic18Command = 0x8

	// Pic18TableReadPostInc reads a byte and post-increments TBLPTR
	Pic18TableReadPostInc Pic18Command = 0x9

	// Pic18TableReadPostDec reads a byte and post-decrements TBLPTR
	Pic18TableReadPostDec Pic18Command = 0xA

	// Pic18TableReadPreInc pre-increments TBLPTR and reads a byte
	Pic18TableReadPreInc Pic18Command = 0xB

	// Pic18TableWrite writes a word to the write latches
	Pic18TableWrite Pic18Command = 0xC

	// Pic18TableWritePostInc2 writes a word and increments TBLPTR by two
	Pic18TableWritePostInc2 Pic18Command = 0xD

	// Pic18TableWritePostInc2StartPgm writes, increments by two and starts programming
	Pic18TableWritePostInc2StartPgm Pic18Command = 0xE

	// Pic18TableWriteStartPgm writes a word and starts programming
	Pic18TableWriteStartPgm Pic18Command = 0xF
)

// Pic16Command is a 6-bit PIC16 ICSP command.
type Pic16Command uint16

// PIC16 command codes per the PIC16F1XXX programming specifications.
// The legacy end-programming code is used by older mid-range parts.
const (
	Pic16LoadConfiguration        Pic16Command = 0x00
	Pic16LoadDataForProgram       Pic16Command = 0x02
	Pic16LoadDataForData          Pic16Command = 0x03
	Pic16ReadDataFromProgram      Pic16Command = 0x04
	Pic16ReadDataFromData         Pic16Command = 0x05
	Pic16IncrementAddress         Pic16Command = 0x06
	Pic16BeginProgrammingInternal Pic16Command = 0x08
	Pic16BulkEraseProgram         Pic16Command = 0x09
	Pic16EndProgramming           Pic16Command = 0x0A
	Pic16BulkEraseData            Pic16Command = 0x0B
	Pic16ResetAddress             Pic16Command = 0x16
	Pic16EndProgrammingLegacy     Pic16Command = 0x17
	Pic16BeginProgrammingExternal Pic16Command = 0x18
)
