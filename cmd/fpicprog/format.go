package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/term"

	"github.com/Mark-G1/fpicprog/protocol"
)

// defaultLineWidth is used when output is not a terminal
const defaultLineWidth = 80

// hexBytes is a byte string rendered as hex in JSON and as a byte string in CBOR
type hexBytes []byte

func (b hexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(b))
}

type exportStep struct {
	Data    hexBytes `json:"data" cbor:"data"`
	DelayNS int64    `json:"delay_ns" cbor:"delay_ns"`
}

type exportSequence struct {
	Device    string       `json:"device" cbor:"device"`
	Family    string       `json:"family" cbor:"family"`
	Operation string       `json:"operation" cbor:"operation"`
	Steps     []exportStep `json:"steps" cbor:"steps"`
}

func newExport(dev *protocol.DeviceInfo, op string, seq protocol.TimedSequence) exportSequence {
	out := exportSequence{
		Device:    dev.Name,
		Family:    dev.Family.String(),
		Operation: op,
		Steps:     make([]exportStep, len(seq)),
	}
	for i, step := range seq {
		out.Steps[i] = exportStep{Data: step.Data.Bytes(), DelayNS: step.Delay.Nanoseconds()}
	}

	return out
}

// Write a sequence in the requested format.
func writeSequence(w io.Writer, format string, dev *protocol.DeviceInfo, op string, seq protocol.TimedSequence, pins bool) error {
	switch format {
	case "text":
		writeText(w, dev, op, seq, outputWidth(w), pins)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(newExport(dev, op, seq))
	case "cbor":
		data, err := cbor.Marshal(newExport(dev, op, seq))
		if err != nil {
			return err
		}
		_, err = w.Write(data)

		return err
	default:
		return fmt.Errorf("unknown output format %q (want text, json or cbor)", format)
	}
}

// Determine the line width for text output.
func outputWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}

	return defaultLineWidth
}

// Write a human readable dump of a sequence. Hex lines are wrapped at bit
// boundaries (pairs of pin states) to fit width.
func writeText(w io.Writer, dev *protocol.DeviceInfo, op string, seq protocol.TimedSequence, width int, pins bool) {
	fmt.Fprintf(w, "%s %s: %d steps, %d pin states, total delay %s\n",
		dev.Name, op, len(seq), seq.Len(), seq.TotalDelay())

	perLine := (width - 2) / 3
	perLine -= perLine % 2
	if perLine < 2 {
		perLine = 2
	}

	for i, step := range seq {
		fmt.Fprintf(w, "step %d: %d pin states, delay %s\n", i, len(step.Data), step.Delay)

		if pins {
			for _, p := range step.Data {
				fmt.Fprintf(w, "  %s\n", p)
			}
			continue
		}

		for start := 0; start < len(step.Data); start += perLine {
			end := start + perLine
			if end > len(step.Data) {
				end = len(step.Data)
			}

			parts := make([]string, 0, end-start)
			for _, p := range step.Data[start:end] {
				parts = append(parts, fmt.Sprintf("%02X", byte(p)))
			}
			fmt.Fprintf(w, "  %s\n", strings.Join(parts, " "))
		}
	}
}
