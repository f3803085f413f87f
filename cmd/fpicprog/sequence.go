package main

import (
	"bytes"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Mark-G1/fpicprog/devicedb"
	"github.com/Mark-G1/fpicprog/protocol"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence [flags] device operation",
	Short: "Generate the timed sequence for an operation.",
	Long: `Generate the timed pin-state sequence for an operation on a device.
Operations are init, bulk-erase, write and write-config for PIC18 devices and
init, chip-erase, erase-data and write-data for PIC16 devices.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		db, err := loadDatabase(cmd)
		if err != nil {
			fail(err)
		}

		cfg := sequenceConfig{
			device:    args[0],
			operation: args[1],
			format:    getString(cmd, "format"),
			entry:     getFlag(cmd, "entry"),
			pins:      getFlag(cmd, "pins"),
		}
		if err := outputSequence(cmd.OutOrStdout(), getString(cmd, "output"), db, cfg); err != nil {
			fail(err)
		}
	},
}

// Generate a sequence to stdout, or to the named file. The file is only
// written once generation has succeeded.
func outputSequence(stdout io.Writer, output string, db *devicedb.Database, cfg sequenceConfig) error {
	if output == "" {
		return generateSequence(stdout, db, cfg)
	}

	var buf bytes.Buffer
	if err := generateSequence(&buf, db, cfg); err != nil {
		return err
	}

	return os.WriteFile(output, buf.Bytes(), 0o644)
}

type sequenceConfig struct {
	device    string
	operation string
	format    string
	// prepend the device entry sequence
	entry bool
	pins  bool
}

func generateSequence(w io.Writer, db *devicedb.Database, cfg sequenceConfig) error {
	dev, op, err := resolveOperation(db, cfg.device, cfg.operation)
	if err != nil {
		return err
	}

	gen, err := protocol.NewGenerator(dev.Family)
	if err != nil {
		return err
	}

	var seq protocol.TimedSequence
	if cfg.entry && op != protocol.SequenceInit {
		seq = append(seq, protocol.DeviceEntrySequence()...)
	}
	seq = append(seq, gen.BuildOperation(op, dev)...)

	log.WithFields(log.Fields{
		"device":    dev.Name,
		"operation": op.String(),
		"steps":     len(seq),
	}).Debug("generated sequence")

	return writeSequence(w, cfg.format, dev, op.String(), seq, cfg.pins)
}

func init() {
	rootCmd.AddCommand(sequenceCmd)
	sequenceCmd.Flags().StringP("format", "f", "text", "output format (text, json or cbor)")
	sequenceCmd.Flags().StringP("output", "o", "", "write to file instead of standard output")
	sequenceCmd.Flags().Bool("entry", false, "prepend the device entry sequence")
	sequenceCmd.Flags().Bool("pins", false, "print pin names instead of hex (text format)")
}
