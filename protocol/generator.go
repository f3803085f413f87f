package protocol

import "fmt"

// SequenceGenerator is implemented by the per-family generators.
type SequenceGenerator interface {
	// BuildOperation returns the timed sequence for t. Device information is
	// optional for some families and sequence types; see the implementations.
	// Requesting a type the generator does not implement panics with
	// *UnimplementedSequenceError.
	BuildOperation(t SequenceType, dev *DeviceInfo) TimedSequence
}

var (
	_ SequenceGenerator = Pic16Generator{}
	_ SequenceGenerator = Pic18Generator{}
)

// NewGenerator returns the generator for a device family.
func NewGenerator(f Family) (SequenceGenerator, error) {
	switch f {
	case FamilyPIC16:
		return Pic16Generator{}, nil
	case FamilyPIC18:
		return Pic18Generator{}, nil
	default:
		return nil, fmt.Errorf("no sequence generator for %s", f)
	}
}

// SupportedSequences lists the sequence types a family's generator implements.
func SupportedSequences(f Family) []SequenceType {
	switch f {
	case FamilyPIC16:
		return []SequenceType{SequenceInit, SequenceChipErase, SequenceEraseData, SequenceWriteData}
	case FamilyPIC18:
		return []SequenceType{SequenceInit, SequenceBulkErase, SequenceWrite, SequenceWriteConfig}
	default:
		return nil
	}
}

// Supports reports whether the generator for f implements t.
func Supports(f Family, t SequenceType) bool {
	for _, s := range SupportedSequences(f) {
		if s == t {
			return true
		}
	}
	return false
}
