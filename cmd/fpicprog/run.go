package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Mark-G1/fpicprog/programmer"
	"github.com/Mark-G1/fpicprog/protocol"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] device operation",
	Short: "Clock an operation out to a bit-banging programmer.",
	Long: `Enter programming mode and run an operation, writing raw pin-state bytes
to the programmer port. The port must already be configured for bit-bang
output with MCLR, PGM, PGC and PGD on bits 0 to 3.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		db, err := loadDatabase(cmd)
		if err != nil {
			fail(err)
		}

		dev, op, err := resolveOperation(db, args[0], args[1])
		if err != nil {
			fail(err)
		}

		port := getString(cmd, "port")
		f, err := os.OpenFile(port, os.O_WRONLY, 0)
		if err != nil {
			fail(err)
		}
		defer f.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		prog := programmer.New(f,
			programmer.WithDevice(dev),
			programmer.WithLogger(logrusLogger{log.StandardLogger()}),
			programmer.WithMinDelay(time.Duration(getUint(cmd, "min-delay-us"))*time.Microsecond),
			programmer.WithProgressCallback(func(p programmer.Progress) {
				log.WithFields(log.Fields{
					"phase": p.Phase,
					"step":  p.Step,
					"total": p.TotalSteps,
				}).Debug(p.Operation)
			}),
		)

		if err := runOperation(ctx, prog, op); err != nil {
			_ = f.Close()
			fail(err)
		}
	},
}

// Enter programming mode, unless that is the requested operation, and run it.
func runOperation(ctx context.Context, prog *programmer.Programmer, op protocol.SequenceType) error {
	if op != protocol.SequenceInit {
		if err := prog.EnterProgramMode(ctx); err != nil {
			return err
		}
	}

	return prog.Execute(ctx, op)
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("port", "p", "/dev/ttyUSB0", "programmer port")
	runCmd.Flags().Uint("min-delay-us", 0, "shortest delay the programmer can honour, in microseconds")
}
