// Package programmer runs ICSP timed sequences against a bit-banging programmer.
//
// # Overview
//
// The protocol package turns operations into timed sequences of pin states.
// This package sends them:
//   - Each step's pin states are written to an io.Writer in one call
//   - The step delay is observed before the next step
//   - Cancellation is checked between steps
//
// The transport is anything that accepts raw pin-state bytes: a serial port
// in bit-bang mode, an FTDI device wrapper, or a buffer in tests. Bit and byte
// order are part of the wire contract and are never changed here.
//
// # Basic Usage
//
//	db, _ := devicedb.Default()
//	dev, _ := db.Lookup("PIC16F1847")
//
//	prog := programmer.New(port, programmer.WithDevice(dev))
//	if err := prog.EnterProgramMode(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	if err := prog.Execute(ctx, protocol.SequenceChipErase); err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration Options
//
//	prog := programmer.New(port,
//	    programmer.WithDevice(dev),
//	    programmer.WithProgressCallback(progressFunc),
//	    programmer.WithLogger(myLogger),
//	    programmer.WithMinDelay(time.Millisecond),
//	)
//
// # Error Handling
//
// Execute checks the operation against the device family first and returns
// *UnsupportedSequenceError instead of asking a generator for a sequence it
// does not implement. A transport that accepts fewer bytes than offered
// produces *ShortWriteError. There are no retries: a failed step leaves the
// target in an unknown state and the caller must start over from
// EnterProgramMode.
package programmer
