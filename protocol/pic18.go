package protocol

// Pic18Generator builds command and timed sequences for PIC18 devices
// (4-bit commands, 16-bit payloads).
//
// Pic18Generator has no state and is safe for concurrent use.
type Pic18Generator struct{}

// BuildCommand encodes a command followed by its 16-bit payload.
//
//	[CMD(4)][PAYLOAD(16)]
//
// Both fields are sent LSB first. The command is not range checked.
func (Pic18Generator) BuildCommand(cmd Pic18Command, payload uint16) PinStates {
	result := EncodeBits(uint32(cmd), Pic18CommandBits)
	return append(result, EncodeBits(uint32(payload), Pic18PayloadBits)...)
}

// BuildOperation returns the timed sequence for the requested operation.
// Device timings are taken from dev when it is non-nil, otherwise the
// generator defaults apply.
//
// Supported types are SequenceInit, SequenceBulkErase, SequenceWrite and
// SequenceWriteConfig. Any other type panics with *UnimplementedSequenceError.
func (Pic18Generator) BuildOperation(t SequenceType, dev *DeviceInfo) TimedSequence {
	const base = pinBase

	switch t {
	case SequenceInit:
		return DeviceEntrySequence()

	case SequenceBulkErase:
		delay := DefaultBulkEraseDelay
		if dev != nil {
			delay = dev.Timing.BulkErase
		}
		return TimedSequence{
			{
				Data:  PinStates{base | PinPGC, base, base | PinPGC, base, base | PinPGC, base, base | PinPGC, base},
				Delay: delay,
			},
			{Data: EncodeBits(0, Pic18PayloadBits)},
		}

	case SequenceWrite, SequenceWriteConfig:
		delay := DefaultBlockWriteDelay
		if t == SequenceWriteConfig {
			delay = DefaultConfigWriteDelay
		}
		if dev != nil {
			delay = dev.Timing.BlockWrite
			if t == SequenceWriteConfig {
				delay = dev.Timing.ConfigWrite
			}
		}
		// The fourth clock is held high for the write time, then released.
		return TimedSequence{
			{
				Data:  PinStates{base | PinPGC, base, base | PinPGC, base, base | PinPGC, base, base | PinPGC},
				Delay: delay,
			},
			{Data: PinStates{base}, Delay: WriteHighVoltageDischarge},
			{Data: EncodeBits(0, Pic18PayloadBits)},
		}
	}

	unimplemented("pic18", t)
	return nil
}
