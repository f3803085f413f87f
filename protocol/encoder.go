package protocol

import "fmt"

// pinBase holds reset released and program mode enabled while shifting bits.
const pinBase = PinMCLR | PinPGM

// EncodeBits encodes the low bits of value, least-significant bit first.
//
// Each bit becomes two pin states: clock high with the data line driven,
// then clock low with the data line unchanged:
//
//	[MCLR|PGM|PGC|d][MCLR|PGM|d]
//
// The result always has length 2*bits. A negative bit count yields an empty
// sequence.
func EncodeBits(value uint32, bits int) PinStates {
	if bits < 0 {
		bits = 0
	}

	result := make(PinStates, 0, 2*bits)
	for i := 0; i < bits; i++ {
		var data PinState
		if i < MaxEncodedBits && (value>>uint(i))&1 != 0 {
			data = PinPGD
		}
		result = append(result, pinBase|PinPGC|data, pinBase|data)
	}
	return result
}

// DecodeBits recovers the value encoded by EncodeBits.
// The data line is sampled on each clock-high pin state.
func DecodeBits(data PinStates) (uint32, error) {
	if len(data)%2 != 0 {
		return 0, fmt.Errorf("odd sequence length %d, bits are encoded as pairs", len(data))
	}

	bits := len(data) / 2
	if bits > MaxEncodedBits {
		return 0, fmt.Errorf("sequence encodes %d bits, maximum is %d", bits, MaxEncodedBits)
	}

	var value uint32
	for i := 0; i < bits; i++ {
		high, low := data[2*i], data[2*i+1]
		if high&PinPGC == 0 || low&PinPGC != 0 {
			return 0, fmt.Errorf("bit %d: expected clock high then low, got %s then %s", i, high, low)
		}
		if high&PinPGD != 0 {
			value |= 1 << uint(i)
		}
	}
	return value, nil
}

// DeviceEntrySequence returns the steps that put a target into low-voltage
// programming mode. The sequence satisfies both the two-pin and the three-pin
// entry requirements, so it is shared by all families.
//
//  1. Pulse MCLR, hold EntryResetDelay.
//  2. Shift EntryKey MSB first, data set up before the clock rises, then
//     raise PGM; hold EntryKeyHoldDelay.
//  3. Release reset with PGM held, hold EntryProgramModeDelay.
func DeviceEntrySequence() TimedSequence {
	key := make(PinStates, 0, 2*EntryKeyBits+1)
	for i := EntryKeyBits - 1; i >= 0; i-- {
		var data PinState
		if (EntryKey>>uint(i))&1 != 0 {
			data = PinPGD
		}
		key = append(key, data, PinPGC|data)
	}
	key = append(key, PinPGM)

	return TimedSequence{
		{Data: PinStates{0, PinMCLR, 0}, Delay: EntryResetDelay},
		{Data: key, Delay: EntryKeyHoldDelay},
		{Data: PinStates{PinPGM | PinMCLR}, Delay: EntryProgramModeDelay},
	}
}
