package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Mark-G1/fpicprog/protocol"
)

var commandCmd = &cobra.Command{
	Use:   "command",
	Short: "Encode a single ICSP command.",
	Long: `Encode a single command and its payload into pin states.
PIC18 commands are 4 bits with a 16-bit payload. PIC16 commands are 6 bits,
optionally followed by a framed 14-bit payload.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		family, err := protocol.ParseFamily(getString(cmd, "family"))
		if err != nil {
			fail(err)
		}

		data, err := encodeCommand(family, getUint(cmd, "opcode"), getUint(cmd, "payload"), getFlag(cmd, "no-payload"))
		if err != nil {
			fail(err)
		}

		writeCommand(cmd.OutOrStdout(), data, getFlag(cmd, "pins"))
	},
}

func encodeCommand(family protocol.Family, opcode, payload uint, noPayload bool) (protocol.PinStates, error) {
	switch family {
	case protocol.FamilyPIC18:
		if opcode > 0xF {
			return nil, fmt.Errorf("pic18 command 0x%X does not fit in 4 bits", opcode)
		}
		if noPayload {
			return nil, fmt.Errorf("pic18 commands always carry a payload")
		}
		if payload > 0xFFFF {
			return nil, fmt.Errorf("pic18 payload 0x%X does not fit in 16 bits", payload)
		}
		return protocol.Pic18Generator{}.BuildCommand(protocol.Pic18Command(opcode), uint16(payload)), nil

	case protocol.FamilyPIC16:
		if opcode > 0x3F {
			return nil, fmt.Errorf("pic16 command 0x%X does not fit in 6 bits", opcode)
		}
		gen := protocol.Pic16Generator{}
		if noPayload {
			return gen.BuildControlCommand(protocol.Pic16Command(opcode)), nil
		}
		if payload > 0x3FFF {
			return nil, fmt.Errorf("pic16 payload 0x%X does not fit in 14 bits", payload)
		}
		return gen.BuildCommand(protocol.Pic16Command(opcode), uint16(payload)), nil
	}

	return nil, fmt.Errorf("unsupported family %s", family)
}

func writeCommand(w io.Writer, data protocol.PinStates, pins bool) {
	for i := 0; i < len(data); i += 2 {
		if pins {
			fmt.Fprintf(w, "%-14s %s\n", data[i], data[i+1])
		} else {
			fmt.Fprintf(w, "%02X %02X\n", byte(data[i]), byte(data[i+1]))
		}
	}
}

func init() {
	rootCmd.AddCommand(commandCmd)
	commandCmd.Flags().String("family", "pic16", "device family (pic16 or pic18)")
	commandCmd.Flags().Uint("opcode", 0, "command code")
	commandCmd.Flags().Uint("payload", 0, "command payload")
	commandCmd.Flags().Bool("no-payload", false, "encode a PIC16 command without payload")
	commandCmd.Flags().Bool("pins", false, "print pin names instead of hex")
}
